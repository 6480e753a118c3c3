package effects

import "math"

// RoundedRectSDF returns the signed distance from point (px, py) to a
// rounded rectangle centered at the origin with half extents (hw, hh)
// and corner radius r. Negative inside, zero on the boundary, positive
// outside. Coordinates are whatever unit the caller works in; the glow
// stage uses pane-local centered UV.
func RoundedRectSDF(px, py, hw, hh, r float64) float64 {
	if r > hw {
		r = hw
	}
	if r > hh {
		r = hh
	}
	qx := math.Abs(px) - (hw - r)
	qy := math.Abs(py) - (hh - r)
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - r
}

// GlowFactor converts a rounded-rect signed distance into glow
// intensity: 1 exactly on the boundary, ramping linearly to 0 over
// width moving inward, and 0 everywhere outside. The glow never leaks
// past the pane edge.
func GlowFactor(sdf, width float64) float64 {
	if sdf > 0 || width <= 0 {
		return 0
	}
	return ramp01(1 + sdf/width)
}

// FocusGlow evaluates the focus highlight at pane-local coordinate
// (u, v) in [0,1]. radius is the rounded-corner radius and width the
// inward ramp, both in pane-local units. intensity scales the result.
func FocusGlow(u, v, radius, width, intensity float64) float64 {
	if intensity <= 0 {
		return 0
	}
	sdf := RoundedRectSDF(u-0.5, v-0.5, 0.5, 0.5, radius)
	return GlowFactor(sdf, width) * intensity
}
