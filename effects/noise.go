package effects

import "math"

// Noise is a 3-input hash over (x, y, t) returning a value in [0, 1).
// The time input is load-bearing: a pure 2-input spatial hash produces a
// fixed pattern that correlates with the scanline banding and shows up
// as moire. Feeding time through the same hash decorrelates every frame.
func Noise(x, y, t float64) float64 {
	s := math.Sin(x*12.9898+y*78.233+t*37.719) * 43758.5453
	return fract(s)
}

// NoiseDelta returns the signed brightness offset for static noise at
// the given magnitude: zero-centered so noise grains both brighten and
// darken.
func NoiseDelta(x, y, t, magnitude float64) float64 {
	if magnitude <= 0 {
		return 0
	}
	return (Noise(x, y, t) - 0.5) * magnitude
}
