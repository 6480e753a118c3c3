package effects

import "github.com/gogpu/crt"

// Bezel composites a decorative frame texture over a rendered screen
// using 9-patch sampling: the corner regions keep their native size,
// the edge strips stretch along one axis, and the middle stretches in
// both. Border is the fixed corner/edge size in texture pixels.
type Bezel struct {
	Texture *crt.Pixmap
	Border  int
}

// NewBezel wraps a frame texture with the given border size. Returns
// nil when the texture is missing or too small to carry the border,
// which callers treat as "no bezel this frame".
func NewBezel(tex *crt.Pixmap, border int) *Bezel {
	if tex == nil || border <= 0 {
		return nil
	}
	if tex.Width() <= border*2 || tex.Height() <= border*2 {
		return nil
	}
	return &Bezel{Texture: tex, Border: border}
}

// Composite alpha-blends the bezel over dst inside the given pixel
// rectangle. The destination border scales proportionally with the
// rectangle so per-pane bezels keep their look at any pane size.
func (b *Bezel) Composite(dst *crt.Pixmap, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	// Destination border: same proportion of the short side as the
	// texture border is of the texture's short side.
	texShort := min(b.Texture.Width(), b.Texture.Height())
	dstShort := min(w, h)
	dstBorder := float64(b.Border) * float64(dstShort) / float64(texShort)
	if dstBorder*2 > float64(dstShort) {
		dstBorder = float64(dstShort) / 2
	}

	for dy := 0; dy < h; dy++ {
		ty := patchCoord(float64(dy), float64(h), dstBorder,
			float64(b.Texture.Height()), float64(b.Border))
		for dx := 0; dx < w; dx++ {
			tx := patchCoord(float64(dx), float64(w), dstBorder,
				float64(b.Texture.Width()), float64(b.Border))
			c := b.Texture.SampleUV(tx/float64(b.Texture.Width()),
				ty/float64(b.Texture.Height()))
			if c.A <= 0 {
				continue
			}
			px, py := x+dx, y+dy
			under := dst.GetPixel(px, py)
			dst.SetPixel(px, py, under.Over(c))
		}
	}
}

// patchCoord maps a destination coordinate along one axis to its
// 9-patch source coordinate: fixed borders on both ends, the middle
// stretched linearly.
func patchCoord(d, dstLen, dstBorder, texLen, texBorder float64) float64 {
	switch {
	case d < dstBorder:
		return d / dstBorder * texBorder
	case d >= dstLen-dstBorder:
		return texLen - texBorder + (d-(dstLen-dstBorder))/dstBorder*texBorder
	default:
		mid := (d - dstBorder) / (dstLen - 2*dstBorder)
		return texBorder + mid*(texLen-2*texBorder)
	}
}
