package crt

// Mode selects how the effect pipeline maps screen pixels to CRT surfaces.
// The mode is read once per frame from configuration; there is no mid-frame
// transition.
type Mode uint8

const (
	// ModeWholeScreen treats the whole window as a single CRT surface.
	// All panes share one text target and one burn-in history.
	ModeWholeScreen Mode = iota

	// ModePerPane gives every pane its own CRT surface, text target, and
	// burn-in history. The focused pane receives a focus glow.
	ModePerPane

	// ModeBezelShared is ModeWholeScreen with a bezel overlay composited
	// over the final output.
	ModeBezelShared

	// ModeBezelPerPane is ModePerPane with an independently scaled bezel
	// composited over each pane.
	ModeBezelPerPane
)

// PerPane reports whether each pane owns its own CRT surface in this mode.
func (m Mode) PerPane() bool {
	return m == ModePerPane || m == ModeBezelPerPane
}

// Bezel reports whether this mode composites a bezel overlay.
func (m Mode) Bezel() bool {
	return m == ModeBezelShared || m == ModeBezelPerPane
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWholeScreen:
		return "whole-screen"
	case ModePerPane:
		return "per-pane"
	case ModeBezelShared:
		return "bezel-shared"
	case ModeBezelPerPane:
		return "bezel-per-pane"
	default:
		return "unknown"
	}
}

// ScanlineMode selects how the scanline cycle length is derived.
type ScanlineMode uint8

const (
	// ScanlineRowBased aligns exactly one brightness cycle to each text
	// row, so glyph strokes sit at maximum brightness and the gaps between
	// lines at minimum. This is the default.
	ScanlineRowBased ScanlineMode = iota

	// ScanlinePixel uses a fixed two-pixel cycle regardless of the glyph
	// cell height, the classic raw-raster look.
	ScanlinePixel
)

// EffectSettings is the immutable-per-frame snapshot of every visual
// parameter the pipeline reads. Configuration owns the live values; the
// core only ever sees a copy, so no locking is needed between a settings
// UI and the render loop.
//
// All parameters are expected to arrive clamped by the configuration
// layer. The pipeline is written defensively against out-of-range values
// (a negative decay renders as no persistence rather than crashing) but
// does not re-validate ranges.
type EffectSettings struct {
	// FontColor is the phosphor color used for default foreground text.
	FontColor Color

	// BackgroundColor fills cells with default background.
	BackgroundColor Color

	// ScreenCurvature controls the barrel distortion strength.
	// 0 is flat glass; useful values stay well below 1.
	ScreenCurvature float64

	// ScanlineIntensity scales the row-aligned brightness banding.
	ScanlineIntensity float64

	// Scanlines selects row-based or pixel-based banding.
	Scanlines ScanlineMode

	// Bloom scales the additive 3x3 phosphor blur. Zero skips the blur
	// entirely.
	Bloom float64

	// BurnIn is the phosphor persistence decay factor per frame.
	// 0 means no persistence; values approaching 1 persist near-permanently.
	BurnIn float64

	// BeamSweep enables the scanning-beam refresh simulation in the
	// burn-in pass.
	BeamSweep bool

	// Interlace restricts beam painting to alternating even/odd scanline
	// fields when BeamSweep is enabled.
	Interlace bool

	// StaticNoise scales the per-pixel temporal noise.
	StaticNoise float64

	// Flicker scales the global per-frame brightness instability.
	Flicker float64

	// Vignette scales the radial corner darkening.
	Vignette float64

	// Brightness is the overall output multiplier.
	Brightness float64

	// FocusGlowRadius is the rounded-rectangle corner radius of the focus
	// glow, in pane-normalized units.
	FocusGlowRadius float64

	// FocusGlowWidth is the inward ramp width of the glow, in
	// pane-normalized units.
	FocusGlowWidth float64

	// FocusGlowIntensity scales the glow contribution.
	FocusGlowIntensity float64

	// ContentScaleX and ContentScaleY scale the content sampling region
	// inside the distorted surface. 1 means the content fills the glass.
	ContentScaleX float64
	ContentScaleY float64

	// BezelBorder is the fixed border thickness of the bezel texture's
	// 9-patch, in bezel-texture pixels.
	BezelBorder int
}

// AmberSettings returns the default warm-CRT preset.
func AmberSettings() EffectSettings {
	return EffectSettings{
		FontColor:          Amber,
		BackgroundColor:    Black,
		ScreenCurvature:    0.1,
		ScanlineIntensity:  0.3,
		Scanlines:          ScanlineRowBased,
		Bloom:              0.4,
		BurnIn:             0.4,
		StaticNoise:        0.05,
		Flicker:            0.05,
		Vignette:           0.1,
		Brightness:         1.0,
		FocusGlowRadius:    0.1,
		FocusGlowWidth:     0.05,
		FocusGlowIntensity: 0.5,
		ContentScaleX:      1.0,
		ContentScaleY:      1.0,
		BezelBorder:        48,
	}
}

// GreenSettings returns a green-phosphor preset.
func GreenSettings() EffectSettings {
	s := AmberSettings()
	s.FontColor = Green
	return s
}
