package effects

import "math"

// Flicker term weights, normalized at use. The mains-frequency sine
// dominates, with a second harmonic, a slow wander, and a small
// stochastic term on top.
const (
	flickerMainsWeight      = 1.0
	flickerHarmonicWeight   = 0.3
	flickerDriftWeight      = 0.5
	flickerStochasticWeight = 0.2

	flickerMainsHz = 60.0
	flickerDriftHz = 0.3
)

// Flicker returns the global brightness multiplier for time t, in
// [1-intensity, 1]. Applied uniformly to every pixel of the frame.
func Flicker(t, intensity float64) float64 {
	if intensity <= 0 {
		return 1
	}
	const twoPi = 2 * math.Pi
	composite := flickerMainsWeight*math.Sin(twoPi*flickerMainsHz*t) +
		flickerHarmonicWeight*math.Sin(twoPi*2*flickerMainsHz*t) +
		flickerDriftWeight*math.Sin(twoPi*flickerDriftHz*t) +
		flickerStochasticWeight*(Noise(0, 0, t)*2-1)
	const total = flickerMainsWeight + flickerHarmonicWeight +
		flickerDriftWeight + flickerStochasticWeight
	composite /= total
	return 1 - intensity*0.5*(1+composite)
}

// Vignette returns the radial darkening multiplier for a coordinate in
// the unit square: 1 at the center, falling off with squared distance.
func Vignette(u, v, intensity float64) float64 {
	if intensity <= 0 {
		return 1
	}
	dx := u - 0.5
	dy := v - 0.5
	r2 := dx*dx + dy*dy
	m := 1 - intensity*2*r2
	if m < 0 {
		return 0
	}
	return m
}
