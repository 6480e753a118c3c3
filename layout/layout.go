// Package layout arranges terminal panes in an automatic near-square grid
// that adapts to the window aspect ratio.
//
// The engine is a pure function of pane count and aspect ratio: for a fixed
// input the rectangle set is identical on every call, which keeps layouts
// stable across window resizes. It has no GPU dependency.
package layout

import (
	"errors"
	"math"
)

// PaneID is an opaque, monotonically increasing pane identifier.
// IDs are never reused within a session.
type PaneID uint64

// MaxPanes is the fixed upper bound on simultaneously open panes.
const MaxPanes = 16

// ErrTooManyPanes is returned by AddPane when the pane limit is reached.
// No layout recomputation occurs in that case.
var ErrTooManyPanes = errors.New("layout: pane limit reached")

// Rect is a rectangle in normalized window coordinates, where the unit
// square spans the full window.
type Rect struct {
	X, Y, W, H float64
}

// FullRect returns the rectangle covering the entire window.
func FullRect() Rect {
	return Rect{X: 0, Y: 0, W: 1, H: 1}
}

// Contains reports whether the normalized point (x, y) lies inside r.
// Edges on the left/top are inclusive, right/bottom exclusive, so points
// on a shared edge hit exactly one pane.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PaneRect pairs a pane with its computed rectangle.
type PaneRect struct {
	ID   PaneID
	Rect Rect
}

// Tree holds the ordered set of open panes and the focus state.
// Insertion order is tab order. The focused pane, when set, is always a
// member; an empty tree has no focus.
type Tree struct {
	panes    []PaneID
	focused  PaneID
	hasFocus bool
	nextID   PaneID
}

// NewTree creates an empty pane tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of open panes.
func (t *Tree) Len() int {
	return len(t.panes)
}

// Panes returns the pane IDs in insertion order. The returned slice is
// owned by the tree and must not be modified.
func (t *Tree) Panes() []PaneID {
	return t.panes
}

// Focused returns the focused pane, if any.
func (t *Tree) Focused() (PaneID, bool) {
	return t.focused, t.hasFocus
}

// SetFocus moves focus to the given pane if it is a member.
func (t *Tree) SetFocus(id PaneID) {
	for _, p := range t.panes {
		if p == id {
			t.focused = id
			t.hasFocus = true
			return
		}
	}
}

// AddPane appends a new pane and gives it focus. It fails with
// ErrTooManyPanes at the MaxPanes limit.
func (t *Tree) AddPane() (PaneID, error) {
	if len(t.panes) >= MaxPanes {
		return 0, ErrTooManyPanes
	}
	id := t.nextID
	t.nextID++
	t.panes = append(t.panes, id)
	t.focused = id
	t.hasFocus = true
	return id, nil
}

// Close removes a pane. If the closed pane was focused, focus moves to the
// most recently added remaining pane. The second return value is false when
// no panes remain, signalling "last pane closed" to the caller.
func (t *Tree) Close(id PaneID) (PaneID, bool) {
	idx := -1
	for i, p := range t.panes {
		if p == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t.focused, t.hasFocus
	}
	t.panes = append(t.panes[:idx], t.panes[idx+1:]...)
	if len(t.panes) == 0 {
		t.hasFocus = false
		t.focused = 0
		return 0, false
	}
	if t.focused == id {
		// Most recently added survivor; IDs are monotonic so the
		// largest remaining ID is the newest.
		newest := t.panes[0]
		for _, p := range t.panes[1:] {
			if p > newest {
				newest = p
			}
		}
		t.focused = newest
	}
	return t.focused, true
}

// PaneRects returns each pane with its layout rectangle, in insertion
// order, for a window with the given aspect ratio (width / height).
func (t *Tree) PaneRects(aspect float64) []PaneRect {
	rects := Compute(len(t.panes), aspect)
	out := make([]PaneRect, len(t.panes))
	for i, id := range t.panes {
		out[i] = PaneRect{ID: id, Rect: rects[i]}
	}
	return out
}

// HitTest returns the pane containing the normalized point (x, y), if any.
func (t *Tree) HitTest(x, y, aspect float64) (PaneID, bool) {
	if x < 0 || x >= 1 || y < 0 || y >= 1 {
		return 0, false
	}
	for _, pr := range t.PaneRects(aspect) {
		if pr.Rect.Contains(x, y) {
			return pr.ID, true
		}
	}
	return 0, false
}

// Compute lays out n panes in the unit square for a window with the given
// aspect ratio (width / height). The column count is ceil(sqrt(n)) and the
// row count ceil(n / columns); panes fill row-major. A final under-full row
// divides its extent evenly among its panes, so the rectangle set always
// tiles the unit square exactly. Portrait windows transpose the assignment
// so stacking favors rows over columns.
//
// Compute is deterministic: identical inputs yield identical output.
func Compute(n int, aspect float64) []Rect {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Rect{FullRect()}
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	rects := make([]Rect, 0, n)
	rowH := 1.0 / float64(rows)
	remaining := n
	for row := 0; row < rows; row++ {
		inRow := cols
		if remaining < cols {
			inRow = remaining
		}
		colW := 1.0 / float64(inRow)
		for col := 0; col < inRow; col++ {
			rects = append(rects, Rect{
				X: float64(col) * colW,
				Y: float64(row) * rowH,
				W: colW,
				H: rowH,
			})
		}
		remaining -= inRow
	}

	if aspect < 1 {
		// Portrait: transpose so the major axis stacks vertically.
		for i := range rects {
			r := rects[i]
			rects[i] = Rect{X: r.Y, Y: r.X, W: r.H, H: r.W}
		}
	}
	return rects
}
