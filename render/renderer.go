// Package render drives frames: it walks the pane layout, composes each
// pane's cell grid into a text target, runs the CRT effect chain, and
// assembles the single presented output. One synchronous pass per frame;
// all state mutation happens between frames on the rendering thread.
package render

import (
	"errors"
	"math"

	"github.com/gogpu/crt"
	"github.com/gogpu/crt/atlas"
	"github.com/gogpu/crt/compose"
	"github.com/gogpu/crt/effects"
	"github.com/gogpu/crt/layout"
	"github.com/gogpu/crt/term"
)

// PanePadding is the inner margin in pixels between a pane's rectangle
// and its cell grid.
const PanePadding = 4

// ErrFrameSkipped reports that the frame was dropped because the output
// targets were reallocated mid-frame (surface loss or resize). The next
// frame proceeds normally.
var ErrFrameSkipped = errors.New("render: frame skipped for target reallocation")

// PaneFrame is one pane's input for a frame: its cell grid and optional
// selection.
type PaneFrame struct {
	Grid      term.Grid
	Selection *compose.Selection
}

// FrameContext is the immutable per-frame snapshot handed to Render:
// configuration values, the render mode, the bezel texture handle, and
// each pane's content. The renderer never retains any of it across
// frames.
type FrameContext struct {
	Time     float64
	Settings crt.EffectSettings
	Scheme   crt.ColorScheme
	Mode     crt.Mode

	// BezelTexture is the 9-patch frame texture for bezel modes. A nil
	// or unusable texture falls back to non-bezel compositing, logged.
	BezelTexture *crt.Pixmap

	// Panes maps pane IDs to their frame content. Panes without an
	// entry render as empty.
	Panes map[layout.PaneID]PaneFrame
}

// paneSurface is the per-pane render state for per-pane modes: a text
// target and an effect pipeline whose burn-in history survives across
// frames as long as the pane keeps its size.
type paneSurface struct {
	text     *crt.Pixmap
	out      *crt.Pixmap
	pipeline *effects.Pipeline
}

// Renderer owns the frame loop state: the pane tree, the compositor, the
// shared and per-pane effect surfaces, and the final output target.
type Renderer struct {
	width, height int

	tree  *layout.Tree
	comp  *compose.Compositor
	atlas *atlas.Atlas

	shared     *effects.Pipeline
	sharedText *crt.Pixmap
	sharedOut  *crt.Pixmap
	panes      map[layout.PaneID]*paneSurface

	target *PixmapTarget

	resizePending bool
}

// New creates a renderer for a width x height output using the given
// glyph atlas and initial color scheme.
func New(width, height int, a *atlas.Atlas, scheme crt.ColorScheme) *Renderer {
	r := &Renderer{
		tree:  layout.NewTree(),
		comp:  compose.New(a, scheme),
		atlas: a,
		panes: make(map[layout.PaneID]*paneSurface),
	}
	r.allocate(width, height)
	return r
}

// Layout returns the pane tree for add/close/hit-test/focus operations.
func (r *Renderer) Layout() *layout.Tree {
	return r.tree
}

// Size returns the output dimensions in pixels.
func (r *Renderer) Size() (w, h int) {
	return r.width, r.height
}

// Target returns the presented output target.
func (r *Renderer) Target() RenderTarget {
	return r.target
}

// Aspect returns the output aspect ratio.
func (r *Renderer) Aspect() float64 {
	return float64(r.width) / float64(r.height)
}

// Resize reallocates every size-dependent target before the next frame:
// the shared surface, all per-pane surfaces, and the output. Burn-in
// history is discarded; a frame already in flight is skipped.
func (r *Renderer) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.allocate(width, height)
	r.resizePending = true
	crt.Logger().Info("render: resized", "width", width, "height", height)
}

func (r *Renderer) allocate(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	r.width, r.height = width, height
	r.shared = effects.NewPipeline(width, height)
	r.sharedText = crt.NewPixmap(width, height)
	r.sharedOut = crt.NewPixmap(width, height)
	r.panes = make(map[layout.PaneID]*paneSurface)
	r.target = NewPixmapTarget(width, height)
}

// GridSize derives the cell grid dimensions for a pane rectangle in
// layout units, from the pane's pixel size, the glyph cell size, and the
// pane padding. Never smaller than 1x1.
func (r *Renderer) GridSize(pane layout.Rect) (cols, rows int) {
	cellW, cellH := r.atlas.CellSize()
	pw := pane.W*float64(r.width) - 2*PanePadding
	ph := pane.H*float64(r.height) - 2*PanePadding
	cols = max(int(pw/cellW), 1)
	rows = max(int(ph/cellH), 1)
	return cols, rows
}

// PointerToPane maps a window pixel position through the active screen
// curvature to a pane. ok is false outside every pane or in the void
// beyond the curved glass edge.
func (r *Renderer) PointerToPane(px, py float64, s *crt.EffectSettings) (layout.PaneID, bool) {
	u := px / float64(r.width)
	v := py / float64(r.height)
	su, sv, ok := effects.Undistort(u, v, s.ScreenCurvature, s.ContentScaleX, s.ContentScaleY)
	if !ok {
		return 0, false
	}
	return r.tree.HitTest(su, sv, r.Aspect())
}

// PointerToCell maps a window pixel position to a pane and the cell
// under it, composing the inverse distortion with the pane hit-test.
func (r *Renderer) PointerToCell(px, py float64, s *crt.EffectSettings) (id layout.PaneID, col, row int, ok bool) {
	u := px / float64(r.width)
	v := py / float64(r.height)
	su, sv, ok := effects.Undistort(u, v, s.ScreenCurvature, s.ContentScaleX, s.ContentScaleY)
	if !ok {
		return 0, 0, 0, false
	}
	id, ok = r.tree.HitTest(su, sv, r.Aspect())
	if !ok {
		return 0, 0, 0, false
	}
	for _, pr := range r.tree.PaneRects(r.Aspect()) {
		if pr.ID != id {
			continue
		}
		cellW, cellH := r.atlas.CellSize()
		lx := su*float64(r.width) - pr.Rect.X*float64(r.width) - PanePadding
		ly := sv*float64(r.height) - pr.Rect.Y*float64(r.height) - PanePadding
		col = int(math.Floor(lx / cellW))
		row = int(math.Floor(ly / cellH))
		cols, rows := r.GridSize(pr.Rect)
		if col < 0 || col >= cols || row < 0 || row >= rows {
			return 0, 0, 0, false
		}
		return id, col, row, true
	}
	return 0, 0, 0, false
}

// Render runs one full frame pass in the fixed stage order and returns
// the presented pixmap. The returned pixmap is owned by the renderer and
// valid until the next Render or Resize call.
func (r *Renderer) Render(fc *FrameContext) (*crt.Pixmap, error) {
	if r.resizePending {
		// Targets were just reallocated; drop this frame and let the
		// next one render against the new sizes.
		r.resizePending = false
		return nil, ErrFrameSkipped
	}

	r.comp.SetScheme(fc.Scheme)
	rects := r.tree.PaneRects(r.Aspect())

	var bezel *effects.Bezel
	if fc.Mode.Bezel() {
		bezel = effects.NewBezel(fc.BezelTexture, fc.Settings.BezelBorder)
		if bezel == nil {
			crt.Logger().Warn("render: bezel texture unusable, compositing without bezel",
				"mode", fc.Mode.String())
		}
	}

	out := r.target.Pixmap()
	out.Clear(crt.Black)

	var err error
	if fc.Mode.PerPane() {
		err = r.renderPerPane(out, rects, fc, bezel)
	} else {
		err = r.renderShared(out, rects, fc, bezel)
	}
	if err != nil {
		return nil, err
	}

	if p := ActivePresenter(); p != nil {
		if err := p.Present(out); err != nil && !errors.Is(err, ErrFallbackToCPU) {
			crt.Logger().Warn("render: GPU present failed", "presenter", p.Name(), "err", err)
		}
	}
	return out, nil
}

// renderShared composes every pane into one shared text target, runs a
// single effect pass over it, and draws separators and the focus border.
func (r *Renderer) renderShared(out *crt.Pixmap, rects []layout.PaneRect, fc *FrameContext, bezel *effects.Bezel) error {
	r.sharedText.Clear(fc.Scheme.Background)

	for _, pr := range rects {
		pf, ok := fc.Panes[pr.ID]
		if !ok || pf.Grid == nil {
			continue
		}
		dl, err := r.comp.Compose(pf.Grid, pf.Selection)
		if err != nil {
			return err
		}
		ox := pr.Rect.X*float64(r.width) + PanePadding
		oy := pr.Rect.Y*float64(r.height) + PanePadding
		r.comp.Render(r.sharedText, dl, ox, oy)
	}

	_, cellH := r.atlas.CellSize()
	r.shared.Apply(out, r.sharedText, &fc.Settings, effects.Frame{
		Time:       fc.Time,
		CellHeight: cellH,
		RowOffset:  PanePadding,
		Focused:    false, // shared surface has no per-pane glow
	})

	if bezel != nil {
		bezel.Composite(out, 0, 0, r.width, r.height)
		return nil
	}
	// Separators and the focus border only exist without a bezel; the
	// bezel frame covers the same screen real estate.
	drawSeparators(out, rects, r.width, r.height, fc.Scheme)
	if id, ok := r.tree.Focused(); ok && len(rects) > 1 {
		for _, pr := range rects {
			if pr.ID == id {
				drawFocusBorder(out, pr.Rect, r.width, r.height, fc.Scheme)
			}
		}
	}
	return nil
}

// renderPerPane gives every pane its own surface and effect history,
// then places the processed outputs into the final frame.
func (r *Renderer) renderPerPane(out *crt.Pixmap, rects []layout.PaneRect, fc *FrameContext, bezel *effects.Bezel) error {
	focused, _ := r.tree.Focused()
	live := make(map[layout.PaneID]bool, len(rects))

	for _, pr := range rects {
		live[pr.ID] = true
		// Round the pane edges, not its size: adjacent panes share an
		// edge in layout units and must share the same pixel column
		// after placement, or seams of unpainted output appear.
		x0 := int(math.Round(pr.Rect.X * float64(r.width)))
		x1 := int(math.Round((pr.Rect.X + pr.Rect.W) * float64(r.width)))
		y0 := int(math.Round(pr.Rect.Y * float64(r.height)))
		y1 := int(math.Round((pr.Rect.Y + pr.Rect.H) * float64(r.height)))
		pw := max(x1-x0, 1)
		ph := max(y1-y0, 1)

		ps := r.panes[pr.ID]
		if ps == nil {
			ps = &paneSurface{}
			r.panes[pr.ID] = ps
		}
		if ps.pipeline == nil || !sizeMatches(ps.pipeline, pw, ph) {
			// Pane appeared or changed size: fresh surface, history gone.
			ps.text = crt.NewPixmap(pw, ph)
			ps.out = crt.NewPixmap(pw, ph)
			ps.pipeline = effects.NewPipeline(pw, ph)
		}

		ps.text.Clear(fc.Scheme.Background)
		if pf, ok := fc.Panes[pr.ID]; ok && pf.Grid != nil {
			dl, err := r.comp.Compose(pf.Grid, pf.Selection)
			if err != nil {
				return err
			}
			r.comp.Render(ps.text, dl, PanePadding, PanePadding)
		}

		_, cellH := r.atlas.CellSize()
		ps.pipeline.Apply(ps.out, ps.text, &fc.Settings, effects.Frame{
			Time:       fc.Time,
			CellHeight: cellH,
			RowOffset:  PanePadding,
			Focused:    pr.ID == focused,
		})

		out.Blit(ps.out, x0, y0)
		if bezel != nil {
			bezel.Composite(out, x0, y0, pw, ph)
		}
	}

	// Drop surfaces of closed panes.
	for id := range r.panes {
		if !live[id] {
			delete(r.panes, id)
		}
	}
	return nil
}

func sizeMatches(p *effects.Pipeline, w, h int) bool {
	pw, ph := p.Size()
	return pw == w && ph == h
}
