package crt

// ColorScheme holds the sixteen indexed terminal colors plus the default
// foreground, background, and accent (cursor / focus indicator) colors.
// Schemes are plain values; the render core receives a snapshot per frame
// and never retains a reference to mutable configuration state.
type ColorScheme struct {
	// Palette holds the 16 base colors: 0-7 normal, 8-15 bright.
	Palette [16]Color

	Foreground Color
	Background Color

	// Accent is used for the cursor block and the focus indicator.
	Accent Color
}

// DefaultScheme returns an amber-on-black scheme in the spirit of a P3
// phosphor monitor. The normal palette entries are dimmed variants of the
// bright ones so bold text reads brighter, as on real hardware.
func DefaultScheme() ColorScheme {
	bright := [8]Color{
		RGB(0.20, 0.12, 0.00), // black
		RGB(1.00, 0.30, 0.10), // red
		RGB(0.75, 0.90, 0.10), // green
		RGB(1.00, 0.80, 0.10), // yellow
		RGB(0.70, 0.55, 0.20), // blue
		RGB(0.95, 0.50, 0.25), // magenta
		RGB(0.85, 0.75, 0.30), // cyan
		RGB(1.00, 0.85, 0.40), // white
	}
	s := ColorScheme{
		Foreground: Amber,
		Background: Black,
		Accent:     Amber,
	}
	for i, c := range bright {
		s.Palette[i] = c.Scale(0.75)
		s.Palette[i+8] = c
	}
	return s
}

// GreenScheme returns a green-phosphor variant of the default scheme.
func GreenScheme() ColorScheme {
	s := DefaultScheme()
	s.Foreground = Green
	s.Accent = Green
	for i := range s.Palette {
		lum := s.Palette[i].Luminance()
		s.Palette[i] = Green.Scale(0.4 + 0.6*lum)
	}
	return s
}

// Indexed resolves a 256-color palette index to a concrete color:
// 0-15 map to the scheme palette, 16-231 to the 6x6x6 color cube, and
// 232-255 to the grayscale ramp.
func (s *ColorScheme) Indexed(idx uint8) Color {
	switch {
	case idx < 16:
		return s.Palette[idx]
	case idx < 232:
		n := int(idx) - 16
		r := n / 36
		g := (n / 6) % 6
		b := n % 6
		return RGB(cubeLevel(r), cubeLevel(g), cubeLevel(b))
	default:
		v := (8 + 10*(float64(idx)-232)) / 255
		return RGB(v, v, v)
	}
}

// cubeLevel maps a 0-5 cube coordinate to its xterm channel level.
func cubeLevel(n int) float64 {
	if n == 0 {
		return 0
	}
	return (55 + 40*float64(n)) / 255
}
