package effects

import "github.com/gogpu/crt"

const (
	// beamPeriod is the time for the simulated beam to sweep the full
	// target height once.
	beamPeriod = 1.5
	// beamBand is the painted band height as a fraction of the target.
	beamBand = 0.25
	// beamTrailDecay is the extra decay applied at the band's trailing
	// edge, fading linearly from the leading edge.
	beamTrailDecay = 0.3
	// darkThreshold exempts background pixels from beam refresh so the
	// sweep never flashes empty regions.
	darkThreshold = 0.05
)

// BurnInParams is the per-frame parameter snapshot for the feedback pass.
type BurnInParams struct {
	// Decay is the per-frame persistence factor: 0 disables history,
	// values approaching 1 make glow near-permanent. Out-of-range
	// values degrade visually instead of crashing: negatives act as 0,
	// values >= 1 are pulled just under it.
	Decay float64
	// Brightness scales fresh content before the comparison.
	Brightness float64
	// BeamSweep enables the scanning-beam variant: only a moving
	// horizontal band is painted each frame, the rest decays.
	BeamSweep bool
	// Interlace restricts painting to alternating even/odd rows.
	Interlace bool
	// Time drives the beam position.
	Time float64
}

// BurnIn is the phosphor-persistence feedback state for one render
// target: a float pair of history buffers alternated each frame. The
// current/previous roles are resolved purely by the toggled index;
// a buffer is never read and written in the same pass. Float storage
// keeps long decay tails from quantizing to zero early.
type BurnIn struct {
	w, h  int
	buf   [2][]float32
	index int // buffer holding the previous frame's result
	frame uint64
}

// NewBurnIn creates feedback state for a w x h target with no history.
func NewBurnIn(w, h int) *BurnIn {
	b := &BurnIn{}
	b.Resize(w, h)
	return b
}

// Resize reallocates the buffers for a new target size. Any accumulated
// history is discarded; persistence restarts from black.
func (b *BurnIn) Resize(w, h int) {
	w = max(w, 1)
	h = max(h, 1)
	b.w, b.h = w, h
	b.buf[0] = make([]float32, w*h*3)
	b.buf[1] = make([]float32, w*h*3)
	b.index = 0
}

// Stored returns the history value at (x, y) for tests and diagnostics.
func (b *BurnIn) Stored(x, y int) (r, g, bl float64) {
	i := (y*b.w + x) * 3
	prev := b.buf[b.index]
	return float64(prev[i]), float64(prev[i+1]), float64(prev[i+2])
}

// Apply runs one feedback frame: reads the previous buffer, decays it,
// compares against cur, writes max(cur*brightness, decayed) into the
// other buffer, toggles the index, and resolves the result into dst.
// dst and cur must match the BurnIn dimensions.
func (b *BurnIn) Apply(dst, cur *crt.Pixmap, p BurnInParams) {
	decay := p.Decay
	if decay < 0 {
		decay = 0
	}
	if decay >= 1 {
		decay = 0.999
	}
	brightness := p.Brightness
	if brightness < 0 {
		brightness = 0
	}

	bandStart, bandEnd := -1, -1
	if p.BeamSweep {
		lead := int(fract(p.Time/beamPeriod) * float64(b.h))
		height := int(beamBand * float64(b.h))
		bandStart = lead - height
		bandEnd = lead
	}
	field := int(b.frame & 1)

	prev := b.buf[b.index]
	next := b.buf[1-b.index]

	for y := 0; y < b.h; y++ {
		paint := true
		trail := 0.0
		if bandEnd >= 0 {
			paint, trail = beamRow(y, bandStart, bandEnd, b.h)
		}
		if paint && p.Interlace && y&1 != field {
			paint = false
		}
		for x := 0; x < b.w; x++ {
			i := (y*b.w + x) * 3
			rowDecay := decay
			if paint && trail > 0 {
				rowDecay *= 1 - beamTrailDecay*trail
			}
			pr := float64(prev[i]) * rowDecay
			pg := float64(prev[i+1]) * rowDecay
			pb := float64(prev[i+2]) * rowDecay

			if paint {
				c := cur.GetPixel(x, y)
				if c.Luminance() >= darkThreshold || bandEnd < 0 {
					pr = max(pr, c.R*brightness)
					pg = max(pg, c.G*brightness)
					pb = max(pb, c.B*brightness)
				}
			}

			next[i] = float32(pr)
			next[i+1] = float32(pg)
			next[i+2] = float32(pb)
			dst.SetPixel(x, y, crt.Color{R: pr, G: pg, B: pb, A: 1}.Clamp())
		}
	}

	b.index = 1 - b.index
	b.frame++
}

// beamRow reports whether row y lies in the painted band and its
// normalized distance behind the leading edge. The band wraps from the
// bottom of the target back to the top.
func beamRow(y, start, end, h int) (paint bool, trail float64) {
	height := end - start
	if height <= 0 {
		return false, 0
	}
	d := end - y
	if d < 0 {
		d += h
	}
	if d >= height {
		return false, 0
	}
	return true, float64(d) / float64(height)
}
