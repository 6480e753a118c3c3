package compose

import (
	"math"

	"github.com/gogpu/crt"
	"github.com/gogpu/crt/atlas"
)

// Render rasterizes the draw list into dst at the given pixel offset.
// The offset places a pane inside a shared target; per-pane targets
// render at (0, 0). Glyph coverage comes from the compositor's atlas.
func (c *Compositor) Render(dst *crt.Pixmap, dl *DrawList, ox, oy float64) {
	for _, q := range dl.Backgrounds {
		dst.FillRect(round(ox+q.X), round(oy+q.Y), round(q.W), round(q.H), q.Color)
	}
	for _, q := range dl.Glyphs {
		c.renderGlyph(dst, q, ox, oy)
	}
	if dl.Cursor != nil {
		q := *dl.Cursor
		dst.FillRect(round(ox+q.X), round(oy+q.Y), round(q.W), round(q.H), q.Color)
	}
}

// renderGlyph blends one coverage-masked quad over dst.
func (c *Compositor) renderGlyph(dst *crt.Pixmap, q GlyphQuad, ox, oy float64) {
	data := c.atlas.Data()
	const atlasSize = atlas.Size

	x0 := round(ox + q.X)
	y0 := round(oy + q.Y)
	w := int(q.W)
	h := int(q.H)
	au := int(q.U0 * atlasSize)
	av := int(q.V0 * atlasSize)

	for dy := 0; dy < h; dy++ {
		py := y0 + dy
		if py < 0 || py >= dst.Height() {
			continue
		}
		srcRow := (av + dy) * atlasSize
		for dx := 0; dx < w; dx++ {
			px := x0 + dx
			if px < 0 || px >= dst.Width() {
				continue
			}
			cov := data[srcRow+au+dx]
			if cov == 0 {
				continue
			}
			a := float64(cov) / 255
			under := dst.GetPixel(px, py)
			dst.SetPixel(px, py, under.Lerp(q.Color, a))
		}
	}
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
