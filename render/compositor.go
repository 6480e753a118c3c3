package render

import (
	"math"

	"github.com/gogpu/crt"
	"github.com/gogpu/crt/layout"
)

// separatorAlpha dims the separator relative to the scheme foreground so
// pane edges read as furniture, not content.
const separatorAlpha = 0.35

// drawSeparators draws one-pixel lines along every shared edge between
// adjacent pane rectangles. Window-border edges get no line.
func drawSeparators(dst *crt.Pixmap, rects []layout.PaneRect, w, h int, scheme crt.ColorScheme) {
	c := scheme.Foreground.Scale(separatorAlpha)
	for _, pr := range rects {
		right := pr.Rect.X + pr.Rect.W
		bottom := pr.Rect.Y + pr.Rect.H
		if right < 1-1e-9 {
			x := int(math.Round(right * float64(w)))
			y0 := int(pr.Rect.Y * float64(h))
			y1 := int(bottom * float64(h))
			dst.FillRect(x, y0, 1, y1-y0, c)
		}
		if bottom < 1-1e-9 {
			y := int(math.Round(bottom * float64(h)))
			x0 := int(pr.Rect.X * float64(w))
			x1 := int(right * float64(w))
			dst.FillRect(x0, y, x1-x0, 1, c)
		}
	}
}

// drawFocusBorder outlines the focused pane's rectangle with accent
// line segments, inset one pixel so the outline never collides with a
// neighboring separator.
func drawFocusBorder(dst *crt.Pixmap, r layout.Rect, w, h int, scheme crt.ColorScheme) {
	x0 := int(r.X*float64(w)) + 1
	y0 := int(r.Y*float64(h)) + 1
	x1 := int((r.X+r.W)*float64(w)) - 1
	y1 := int((r.Y+r.H)*float64(h)) - 1
	if x1 <= x0 || y1 <= y0 {
		return
	}
	c := scheme.Accent
	dst.FillRect(x0, y0, x1-x0, 1, c)
	dst.FillRect(x0, y1-1, x1-x0, 1, c)
	dst.FillRect(x0, y0, 1, y1-y0, c)
	dst.FillRect(x1-1, y0, 1, y1-y0, c)
}
