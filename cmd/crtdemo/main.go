// Command crtdemo renders synthetic terminal content through the CRT
// pipeline and writes the resulting frames as PNG files.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/gogpu/crt"
	"github.com/gogpu/crt/atlas"
	"github.com/gogpu/crt/layout"
	"github.com/gogpu/crt/render"
	"github.com/gogpu/crt/term"
)

func main() {
	var (
		width    = flag.Int("width", 800, "output width in pixels")
		height   = flag.Int("height", 600, "output height in pixels")
		panes    = flag.Int("panes", 2, "number of terminal panes (1-16)")
		mode     = flag.String("mode", "whole", "render mode: whole, per-pane, bezel, bezel-per-pane")
		frames   = flag.Int("frames", 1, "number of frames to render")
		fontPath = flag.String("font", "", "path to a TTF/OTF monospace font (block glyphs when empty)")
		fontSize = flag.Float64("size", 16, "font pixel size")
		output   = flag.String("output", "crtdemo-%03d.png", "output filename pattern")
	)
	flag.Parse()

	m, err := parseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}

	a, err := buildAtlas(*fontPath, *fontSize)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	scheme := crt.DefaultScheme()
	settings := crt.AmberSettings()
	settings.BeamSweep = true

	r := render.New(*width, *height, a, scheme)
	grids := make(map[layout.PaneID]render.PaneFrame)
	for i := 0; i < *panes; i++ {
		id, err := r.Layout().AddPane()
		if err != nil {
			log.Fatalf("Failed to add pane: %v", err)
		}
		rects := r.Layout().PaneRects(r.Aspect())
		cols, rows := r.GridSize(rects[len(rects)-1].Rect)
		grids[id] = render.PaneFrame{Grid: demoBuffer(cols, rows, i)}
	}
	// Pane rects change as panes are added; resize every grid to its
	// final dimensions.
	for _, pr := range r.Layout().PaneRects(r.Aspect()) {
		cols, rows := r.GridSize(pr.Rect)
		if b, ok := grids[pr.ID].Grid.(*term.Buffer); ok {
			b.Resize(cols, rows)
		}
	}

	var bezelTex *crt.Pixmap
	if m.Bezel() {
		bezelTex = syntheticBezel(256, settings.BezelBorder)
	}

	for i := 0; i < *frames; i++ {
		fc := &render.FrameContext{
			Time:         float64(i) / 30.0,
			Settings:     settings,
			Scheme:       scheme,
			Mode:         m,
			BezelTexture: bezelTex,
			Panes:        grids,
		}
		frame, err := r.Render(fc)
		if err != nil {
			log.Fatalf("Frame %d: %v", i, err)
		}
		name := fmt.Sprintf(*output, i)
		if err := frame.SavePNG(name); err != nil {
			log.Fatalf("Failed to save %s: %v", name, err)
		}
	}

	log.Printf("Rendered %d frame(s) to %s (%dx%d, %s)\n",
		*frames, *output, *width, *height, m.String())
}

func parseMode(s string) (crt.Mode, error) {
	switch s {
	case "whole":
		return crt.ModeWholeScreen, nil
	case "per-pane":
		return crt.ModePerPane, nil
	case "bezel":
		return crt.ModeBezelShared, nil
	case "bezel-per-pane":
		return crt.ModeBezelPerPane, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func buildAtlas(path string, size float64) (*atlas.Atlas, error) {
	if path == "" {
		// No font on hand: block glyphs keep the pipeline demo usable.
		a := atlas.NewWithRasterizer(blockRasterizer{}, size*0.6, size, size*0.8)
		return a, a.Prepopulate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	source, err := atlas.NewFontSource(data)
	if err != nil {
		return nil, err
	}
	a := atlas.New(source, size)
	return a, a.Prepopulate()
}

// blockRasterizer renders every glyph as a filled block slightly inset
// from the cell, enough to see the effect chain without a font file.
type blockRasterizer struct{}

func (blockRasterizer) Rasterize(r rune, size float64) (atlas.Mask, bool) {
	if r == ' ' {
		return atlas.Mask{Advance: size * 0.6}, true
	}
	w := int(size*0.6) - 2
	h := int(size*0.8) - 2
	m := atlas.Mask{
		Alpha:    make([]uint8, w*h),
		Width:    w,
		Height:   h,
		BearingX: 1,
		BearingY: -float64(h),
		Advance:  size * 0.6,
	}
	for i := range m.Alpha {
		m.Alpha[i] = 255
	}
	return m, true
}

// demoBuffer fills a pane with sample content exercising colors, styles,
// box drawing, and the cursor.
func demoBuffer(cols, rows int, pane int) *term.Buffer {
	b := term.NewBuffer(cols, rows)
	fg := term.DefaultColor()
	bg := term.DefaultColor()

	b.WriteString(0, 0, fmt.Sprintf("pane %d - crt demo", pane), fg, bg, term.StyleBold)
	b.WriteString(0, 1, "The quick brown fox jumps over the lazy dog", fg, bg, 0)
	b.WriteString(0, 2, "0123456789 !\"#$%&'()*+,-./ :;<=>?@ [\\]^_`{|}~", fg, bg, 0)

	for i := 0; i < 16 && i < cols; i++ {
		b.SetCell(i, 3, term.Cell{Rune: '█', FG: term.Indexed(uint8(i)), BG: bg})
	}
	b.WriteString(0, 4, "bold", fg, bg, term.StyleBold)
	b.WriteString(5, 4, "dim", fg, bg, term.StyleDim)
	b.WriteString(9, 4, "inverse", fg, bg, term.StyleInverse)

	if rows > 6 && cols > 20 {
		b.WriteString(0, 6, "┌──────────────────┐", fg, bg, 0)
		b.WriteString(0, 7, "│ box drawing test │", fg, bg, 0)
		b.WriteString(0, 8, "└──────────────────┘", fg, bg, 0)
	}
	if rows > 10 {
		b.WriteString(0, 10, "$ ", term.Named(2), bg, 0)
		b.SetCursor(2, 10, true)
	}
	return b
}

// syntheticBezel draws a simple dark rounded frame with a transparent
// center, standing in for a real bezel texture asset.
func syntheticBezel(size, border int) *crt.Pixmap {
	p := crt.NewPixmap(size, size)
	edge := crt.RGB(0.12, 0.10, 0.09)
	face := crt.RGB(0.22, 0.20, 0.18)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := min(min(x, y), min(size-1-x, size-1-y))
			if d >= border {
				continue // transparent center
			}
			t := float64(d) / float64(border)
			c := edge.Lerp(face, math.Sqrt(t))
			c.A = 1
			p.SetPixel(x, y, c)
		}
	}
	return p
}
