// Package effects implements the CRT effect chain: barrel distortion,
// bloom, row-aligned scanlines, hash noise, flicker, vignette, focus
// glow, burn-in feedback, and bezel compositing. Stages are pure
// functions over UV coordinates and pixel values; Pipeline fuses them
// in the fixed per-frame order.
package effects

// Distort applies the barrel remap to a sample coordinate. curvature 0
// is the identity. contentScaleX/Y expand or shrink the content about
// the center before the radial term, so aspect-correcting hosts can
// letterbox without a separate pass.
//
// The returned coordinate may fall outside the unit square; see
// EdgeFade for the off-screen falloff.
func Distort(u, v, curvature, contentScaleX, contentScaleY float64) (du, dv float64) {
	cx := (u*2 - 1)
	cy := (v*2 - 1)
	if contentScaleX > 0 {
		cx /= contentScaleX
	}
	if contentScaleY > 0 {
		cy /= contentScaleY
	}
	r2 := cx*cx + cy*cy
	scale := 1 + curvature*r2
	cx *= scale
	cy *= scale
	return (cx + 1) / 2, (cy + 1) / 2
}

// Undistort inverts Distort for pointer mapping, iterating the forward
// remap (the radial term has no closed-form inverse). ok is false when
// the screen position falls in the void outside the curved tube face.
func Undistort(du, dv, curvature, contentScaleX, contentScaleY float64) (u, v float64, ok bool) {
	u, v = du, dv
	for i := 0; i < 8; i++ {
		gu, gv := Distort(u, v, curvature, contentScaleX, contentScaleY)
		u += du - gu
		v += dv - gv
	}
	gu, gv := Distort(u, v, curvature, contentScaleX, contentScaleY)
	const tol = 1e-4
	if gu < -tol || gu > 1+tol || gv < -tol || gv > 1+tol {
		return 0, 0, false
	}
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, 0, false
	}
	return u, v, true
}

// EdgeFade returns the off-screen falloff multiplier for a distorted
// coordinate: 1 well inside the unit square, ramping to 0 across an
// anti-aliasing band at the edge, 0 outside. The band width is the
// screen-space derivative of the distorted coordinate (how far the
// sample moves per output pixel), so the edge stays smooth at any
// resolution instead of cutting on a fixed pixel count.
func EdgeFade(du, dv, dudx, dvdy float64) float64 {
	return axisFade(du, dudx) * axisFade(dv, dvdy)
}

func axisFade(c, w float64) float64 {
	if w <= 0 {
		if c < 0 || c > 1 {
			return 0
		}
		return 1
	}
	return ramp01(c/w) * ramp01((1-c)/w)
}

func ramp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
