package atlas

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Mask is a rasterized glyph: an 8-bit alpha bitmap plus its placement
// relative to the glyph origin on the baseline.
type Mask struct {
	// Alpha holds coverage values, row-major, Width*Height bytes.
	Alpha []uint8

	Width  int
	Height int

	// BearingX is the horizontal offset from the pen position to the
	// bitmap's left edge.
	BearingX float64

	// BearingY is the vertical offset from the baseline to the bitmap's
	// top edge; negative values extend above the baseline (screen-space
	// Y grows downward).
	BearingY float64

	// Advance is the horizontal pen advance for the glyph.
	Advance float64
}

// Rasterizer produces glyph bitmaps for the atlas. It is the boundary to
// the font-rendering collaborator: the atlas only ever asks for "the
// bitmap for codepoint r at size s".
type Rasterizer interface {
	// Rasterize renders the glyph for r at the given pixel size.
	// The second return value is false when the font has no glyph for r.
	Rasterize(r rune, size float64) (Mask, bool)
}

// openTypeRasterizer renders glyphs through x/image's opentype face.
type openTypeRasterizer struct {
	source *FontSource
}

// NewRasterizer returns a Rasterizer backed by the font source's sfnt
// outlines.
func NewRasterizer(source *FontSource) Rasterizer {
	return &openTypeRasterizer{source: source}
}

func (o *openTypeRasterizer) Rasterize(r rune, size float64) (Mask, bool) {
	face, err := opentype.NewFace(o.source.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Mask{}, false
	}
	defer func() {
		_ = face.Close()
	}()

	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return Mask{}, false
	}

	minX := int(bounds.Min.X) >> 6
	minY := int(bounds.Min.Y) >> 6
	maxX := int(bounds.Max.X+63) >> 6
	maxY := int(bounds.Max.Y+63) >> 6
	w := maxX - minX
	h := maxY - minY

	m := Mask{
		Width:    w,
		Height:   h,
		BearingX: float64(minX),
		BearingY: float64(minY),
		Advance:  fixedToFloat(advance),
	}
	if w <= 0 || h <= 0 {
		// Whitespace glyphs carry an advance but no coverage.
		m.Width, m.Height = 0, 0
		return m, true
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	d.DrawString(string(r))

	// Repack tightly; image.Alpha strides can exceed the width.
	m.Alpha = make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		copy(m.Alpha[y*w:], row)
	}
	return m, true
}
