package effects

import (
	"github.com/gogpu/crt"
	"github.com/gogpu/crt/layout"
)

// Transform is the closed per-mode coordinate mapping between global
// (window) UV and pane-local UV, carrying only the pane rectangle it
// needs. It is resolved once per frame from the render mode; there is
// no mid-frame mode change.
type Transform struct {
	perPane bool
	pane    layout.Rect
}

// WholeScreenTransform treats the full target as one surface.
func WholeScreenTransform() Transform {
	return Transform{pane: layout.FullRect()}
}

// PerPaneTransform scopes the surface to one pane's rectangle.
func PerPaneTransform(pane layout.Rect) Transform {
	return Transform{perPane: true, pane: pane}
}

// ToLocal maps a global UV coordinate into the transform's pane-local
// space. For the whole-screen transform this is the identity.
func (t Transform) ToLocal(u, v float64) (lu, lv float64) {
	if !t.perPane {
		return u, v
	}
	return (u - t.pane.X) / t.pane.W, (v - t.pane.Y) / t.pane.H
}

// ToGlobal maps a pane-local UV coordinate back to global space.
func (t Transform) ToGlobal(lu, lv float64) (u, v float64) {
	if !t.perPane {
		return lu, lv
	}
	return t.pane.X + lu*t.pane.W, t.pane.Y + lv*t.pane.H
}

// Frame is the per-frame context the pipeline stages read.
type Frame struct {
	// Time in seconds drives scanline drift, flicker, noise, and the
	// beam sweep.
	Time float64
	// CellHeight is the glyph cell height in surface pixels, the
	// scanline cycle length in row-based mode.
	CellHeight float64
	// RowOffset is the pixel distance from the surface top to the first
	// text row. It shifts the scanline phase so the wave peaks on glyph
	// strokes rather than at the surface edge.
	RowOffset float64
	// Focused enables the focus glow on this surface.
	Focused bool
}

// Pipeline applies the CRT effect chain to one surface. Each surface
// (the shared screen or an individual pane) owns one Pipeline so its
// burn-in history stays independent. The stage order is fixed:
// distortion and bloom, then glow, then scanlines, noise, flicker and
// vignette, then burn-in feedback. Bezel compositing happens after, in
// the final compositor, because it overlays the finished surface.
type Pipeline struct {
	burnIn *BurnIn
	bloom  *crt.Pixmap
	w, h   int
}

// NewPipeline creates the effect state for a w x h surface.
func NewPipeline(w, h int) *Pipeline {
	p := &Pipeline{}
	p.Resize(w, h)
	return p
}

// Resize reallocates per-surface state, discarding burn-in history.
func (p *Pipeline) Resize(w, h int) {
	w = max(w, 1)
	h = max(h, 1)
	p.w, p.h = w, h
	p.burnIn = NewBurnIn(w, h)
	p.bloom = crt.NewPixmap(w, h)
}

// Size returns the surface dimensions the pipeline was allocated for.
func (p *Pipeline) Size() (w, h int) {
	return p.w, p.h
}

// Apply runs the full chain from the composed text target src into dst.
// Both must match the pipeline's dimensions. settings is the frame's
// immutable parameter snapshot.
func (p *Pipeline) Apply(dst, src *crt.Pixmap, s *crt.EffectSettings, f Frame) {
	Bloom(p.bloom, src, s.Bloom)

	flicker := Flicker(f.Time, s.Flicker)
	brightness := s.Brightness
	if brightness <= 0 {
		brightness = 1
	}
	glowColor := s.FontColor

	// With no curvature and unit content scale the remap is the
	// identity: no sample can land off-screen, so the edge fade must
	// stay off or its derivative band would dim the outermost rows.
	flat := s.ScreenCurvature == 0 &&
		(s.ContentScaleX <= 0 || s.ContentScaleX == 1) &&
		(s.ContentScaleY <= 0 || s.ContentScaleY == 1)

	w, h := float64(p.w), float64(p.h)
	for y := 0; y < p.h; y++ {
		v := (float64(y) + 0.5) / h
		for x := 0; x < p.w; x++ {
			u := (float64(x) + 0.5) / w

			du, dv := u, v
			fade := 1.0
			if !flat {
				du, dv = Distort(u, v, s.ScreenCurvature, s.ContentScaleX, s.ContentScaleY)
				// Derivative of the distorted coordinate across one output
				// pixel, the anti-aliasing band width at the glass edge.
				du1, dv1 := Distort(u+1/w, v+1/h, s.ScreenCurvature, s.ContentScaleX, s.ContentScaleY)
				fade = EdgeFade(du, dv, du1-du, dv1-dv)
				if fade <= 0 {
					dst.SetPixel(x, y, crt.Black)
					continue
				}
			}

			c := p.bloom.SampleUV(du, dv)

			if f.Focused && s.FocusGlowIntensity > 0 {
				g := FocusGlow(du, dv, s.FocusGlowRadius, s.FocusGlowWidth, s.FocusGlowIntensity)
				if g > 0 {
					c = c.Add(glowColor.Scale(g))
				}
			}

			// Dynamic stages run on the distorted sample position so the
			// banding follows the curved glass.
			m := Scanline(dv*h-f.RowOffset, f.CellHeight, f.Time, s.ScanlineIntensity, s.Scanlines)
			m *= flicker
			m *= Vignette(u, v, s.Vignette)
			m *= fade * brightness

			c = c.Scale(m)
			if n := NoiseDelta(du, dv, f.Time, s.StaticNoise); n != 0 {
				c = crt.Color{R: c.R + n, G: c.G + n, B: c.B + n, A: c.A}
			}
			dst.SetPixel(x, y, c.Clamp())
		}
	}

	if s.BurnIn > 0 {
		p.burnIn.Apply(dst, dst.Clone(), BurnInParams{
			Decay:      s.BurnIn,
			Brightness: 1,
			BeamSweep:  s.BeamSweep,
			Interlace:  s.Interlace,
			Time:       f.Time,
		})
	}
}
