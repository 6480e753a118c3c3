package effects

import "github.com/gogpu/crt"

// 3x3 bloom kernel. Weights sum to 1 so the blurred term never
// amplifies on its own; intensity controls the additive blend.
var bloomKernel = [3][3]float64{
	{0.0625, 0.125, 0.0625},
	{0.125, 0.25, 0.125},
	{0.0625, 0.125, 0.0625},
}

// Bloom adds a weighted 3x3 neighbor blur of src into dst, scaled by
// intensity. src and dst must have identical dimensions and may not
// alias. At zero intensity the pass copies src through without touching
// the blur loop.
func Bloom(dst, src *crt.Pixmap, intensity float64) {
	w, h := src.Width(), src.Height()
	if intensity <= 0 {
		dst.Blit(src, 0, 0)
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var br, bg, bb float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					wgt := bloomKernel[ky+1][kx+1]
					c := getClampedPixel(src, x+kx, y+ky)
					br += c.R * wgt
					bg += c.G * wgt
					bb += c.B * wgt
				}
			}
			c := src.GetPixel(x, y)
			dst.SetPixel(x, y, crt.Color{
				R: c.R + br*intensity,
				G: c.G + bg*intensity,
				B: c.B + bb*intensity,
				A: c.A,
			}.Clamp())
		}
	}
}

func getClampedPixel(p *crt.Pixmap, x, y int) crt.Color {
	if x < 0 {
		x = 0
	} else if x >= p.Width() {
		x = p.Width() - 1
	}
	if y < 0 {
		y = 0
	} else if y >= p.Height() {
		y = p.Height() - 1
	}
	return p.GetPixel(x, y)
}
