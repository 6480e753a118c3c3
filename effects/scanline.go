package effects

import (
	"math"

	"github.com/gogpu/crt"
)

// driftPeriod is the time for the scanline phase to drift by one whole
// scanline. The drift advances in whole-scanline steps; sub-scanline
// drift interferes with the row pattern and produces moire.
const driftPeriod = 2.0

// pixelCycle is the brightness cycle length in pixels for
// ScanlinePixel mode.
const pixelCycle = 2.0

// Scanline returns the brightness multiplier for pixel row y at time t.
//
// In row-based mode the cycle length is the glyph cell height, so each
// text row gets exactly one cycle: a triangle wave peaking mid-row where
// glyph strokes sit and dipping at the row boundaries. Pixel mode is the
// classic 2-pixel banding of the original hardware look.
func Scanline(y, cellH, t, intensity float64, mode crt.ScanlineMode) float64 {
	if intensity <= 0 {
		return 1
	}
	cycle := cellH
	if mode == crt.ScanlinePixel {
		cycle = pixelCycle
	}
	if cycle <= 0 {
		return 1
	}
	drift := math.Floor(t / driftPeriod)
	frac := fract((y + drift) / cycle)
	tri := 1 - math.Abs(2*frac-1)
	return 1 - intensity*(1-tri)
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}
