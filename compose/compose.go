// Package compose turns a terminal cell grid into a draw list of colored
// quads: cell backgrounds, atlas-sampled glyphs, and the cursor block.
// The draw list is target-agnostic; rendering into a CPU pixmap lives in
// render.go and GPU submission consumes the same list.
package compose

import (
	"github.com/gogpu/crt"
	"github.com/gogpu/crt/atlas"
	"github.com/gogpu/crt/term"
)

// BackgroundQuad is a solid-color rectangle in pane-local pixels.
type BackgroundQuad struct {
	X, Y, W, H float64
	Color      crt.Color
}

// GlyphQuad is an atlas-sampled rectangle in pane-local pixels. The UV
// rectangle selects the glyph's coverage bitmap; Color tints it.
type GlyphQuad struct {
	X, Y, W, H     float64
	U0, V0, U1, V1 float64
	Color          crt.Color
}

// DrawList is one pane's composed frame. Backgrounds draw first, then
// glyphs, then the cursor block on top.
type DrawList struct {
	Backgrounds []BackgroundQuad
	Glyphs      []GlyphQuad
	Cursor      *BackgroundQuad
}

// Selection is an active selection range in reading order, inclusive on
// both ends. Cells inside draw with foreground and background swapped.
type Selection struct {
	StartCol, StartRow int
	EndCol, EndRow     int
}

// Contains reports whether (col, row) falls inside the range.
func (s Selection) Contains(col, row int) bool {
	if row < s.StartRow || row > s.EndRow {
		return false
	}
	if row == s.StartRow && col < s.StartCol {
		return false
	}
	if row == s.EndRow && col > s.EndCol {
		return false
	}
	return true
}

// Compositor composes cell grids against a shared glyph atlas and a
// color scheme snapshot.
type Compositor struct {
	atlas  *atlas.Atlas
	scheme crt.ColorScheme
}

// New creates a compositor over the given atlas and scheme.
func New(a *atlas.Atlas, scheme crt.ColorScheme) *Compositor {
	return &Compositor{atlas: a, scheme: scheme}
}

// SetScheme replaces the color scheme snapshot for subsequent frames.
func (c *Compositor) SetScheme(scheme crt.ColorScheme) {
	c.scheme = scheme
}

// Atlas returns the compositor's glyph atlas.
func (c *Compositor) Atlas() *atlas.Atlas {
	return c.atlas
}

// Compose walks the grid and emits the pane's draw list in pane-local
// pixel coordinates. sel may be nil.
//
// A maximal run of consecutive codepoints outside the renderable set
// collapses to a single placeholder glyph in the run's first cell; the
// remaining run cells emit nothing at all, so the visible output is
// narrower than the logical run. This mirrors the long-standing behavior
// of the renderer and is kept deliberately.
func (c *Compositor) Compose(grid term.Grid, sel *Selection) (*DrawList, error) {
	cols, rows := grid.Size()
	cellW, cellH := c.atlas.CellSize()
	ascent := c.atlas.Ascent()

	dl := &DrawList{
		Backgrounds: make([]BackgroundQuad, 0, cols*rows),
		Glyphs:      make([]GlyphQuad, 0, cols*rows/2),
	}

	for row := 0; row < rows; row++ {
		inCollapsedRun := false
		for col := 0; col < cols; col++ {
			cell := grid.CellAt(col, row)
			if cell.Style.WideSpacer() {
				inCollapsedRun = false
				continue
			}

			renderable := atlas.IsRenderable(cell.Rune)
			if !renderable && inCollapsedRun {
				continue
			}
			inCollapsedRun = !renderable

			fg, bg := cell.Colors(&c.scheme)
			if sel != nil && sel.Contains(col, row) {
				fg, bg = bg, fg
			}

			x := float64(col) * cellW
			y := float64(row) * cellH
			dl.Backgrounds = append(dl.Backgrounds, BackgroundQuad{
				X: x, Y: y, W: cellW, H: cellH, Color: bg,
			})

			if renderable && cell.Blank() {
				continue
			}
			r := cell.Rune
			if !renderable {
				r = atlas.Placeholder
			}
			entry, err := c.atlas.Glyph(r)
			if err != nil {
				return nil, err
			}
			if entry.Width == 0 || entry.Height == 0 {
				continue
			}
			dl.Glyphs = append(dl.Glyphs, GlyphQuad{
				X:  x + entry.BearingX,
				Y:  y + ascent + entry.BearingY,
				W:  float64(entry.Width),
				H:  float64(entry.Height),
				U0: entry.U0, V0: entry.V0, U1: entry.U1, V1: entry.V1,
				Color: fg,
			})
		}
	}

	if cur := grid.Cursor(); cur.Visible &&
		cur.Col >= 0 && cur.Col < cols && cur.Row >= 0 && cur.Row < rows {
		dl.Cursor = &BackgroundQuad{
			X:     float64(cur.Col) * cellW,
			Y:     float64(cur.Row) * cellH,
			W:     cellW,
			H:     cellH,
			Color: c.scheme.Accent,
		}
	}

	return dl, nil
}
