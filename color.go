package crt

import "image/color"

// Color represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// Classic phosphor colors.
var (
	// Amber is the warm P3 phosphor color used by the default preset.
	Amber = RGB(1.0, 0.7, 0.0)
	// Green is the classic P1 phosphor color.
	Green = RGB(0.2, 1.0, 0.2)
	// White is a neutral phosphor.
	White = RGB(1.0, 1.0, 1.0)
	// Black is opaque black.
	Black = RGB(0, 0, 0)
	// Transparent is fully transparent black.
	Transparent = Color{}
)

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// Scale multiplies the RGB components by f, leaving alpha unchanged.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}

// Add returns the component-wise sum of two colors (RGB only).
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A}
}

// Clamp limits all components to [0, 1].
func (c Color) Clamp() Color {
	return Color{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// Luminance returns the perceptual brightness of the color in [0, 1]
// using Rec. 601 luma weights.
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Lerp linearly interpolates between c and o by t in [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Over alpha-blends src over c using non-premultiplied source-over.
func (c Color) Over(src Color) Color {
	a := src.A
	return Color{
		R: src.R*a + c.R*(1-a),
		G: src.G*a + c.G*(1-a),
		B: src.B*a + c.B*(1-a),
		A: a + c.A*(1-a),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
