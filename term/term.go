// Package term defines the interface boundary to the terminal-emulation
// collaborator: the cell grid a pane exposes once per frame, cell color
// variants, style flags, and the cursor. It also provides Buffer, an
// in-memory Grid used by tests and the demo.
//
// This package never renders anything; it only models what the renderer
// consumes.
package term

import (
	"github.com/gogpu/crt"
)

// ColorKind discriminates the cell color variants a terminal emulator
// can produce.
type ColorKind uint8

const (
	// ColorDefault resolves to the scheme's foreground or background.
	ColorDefault ColorKind = iota
	// ColorNamed is one of the 16 classic palette slots (0-15).
	ColorNamed
	// ColorIndexed is an xterm-256 palette index (0-255).
	ColorIndexed
	// ColorRGB is a direct 24-bit color.
	ColorRGB
)

// CellColor is a cell's foreground or background color before scheme
// resolution. The zero value is the default color.
type CellColor struct {
	Kind  ColorKind
	Index uint8 // named slot or xterm-256 index
	R     uint8
	G     uint8
	B     uint8
}

// DefaultColor returns the scheme-default color.
func DefaultColor() CellColor {
	return CellColor{}
}

// Named returns a classic 16-color palette reference. n is masked to 0-15.
func Named(n uint8) CellColor {
	return CellColor{Kind: ColorNamed, Index: n & 0x0f}
}

// Indexed returns an xterm-256 palette reference.
func Indexed(n uint8) CellColor {
	return CellColor{Kind: ColorIndexed, Index: n}
}

// RGB returns a direct 24-bit color.
func RGB(r, g, b uint8) CellColor {
	return CellColor{Kind: ColorRGB, R: r, G: g, B: b}
}

// Resolve maps the cell color onto the active scheme. foreground selects
// which scheme default applies when Kind is ColorDefault.
func (c CellColor) Resolve(scheme *crt.ColorScheme, foreground bool) crt.Color {
	switch c.Kind {
	case ColorNamed:
		return scheme.Palette[c.Index&0x0f]
	case ColorIndexed:
		return scheme.Indexed(c.Index)
	case ColorRGB:
		return crt.RGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
	default:
		if foreground {
			return scheme.Foreground
		}
		return scheme.Background
	}
}

// Style is a bit set of cell attributes.
type Style uint8

const (
	// StyleBold selects the bright variant of named colors 0-7.
	StyleBold Style = 1 << iota
	// StyleDim darkens the resolved foreground.
	StyleDim
	// StyleInverse swaps foreground and background.
	StyleInverse
	// StyleWideSpacer marks the trailing half of a wide character.
	// Spacer cells are skipped entirely by the compositor.
	StyleWideSpacer
)

// Bold reports whether StyleBold is set.
func (s Style) Bold() bool { return s&StyleBold != 0 }

// Dim reports whether StyleDim is set.
func (s Style) Dim() bool { return s&StyleDim != 0 }

// Inverse reports whether StyleInverse is set.
func (s Style) Inverse() bool { return s&StyleInverse != 0 }

// WideSpacer reports whether StyleWideSpacer is set.
func (s Style) WideSpacer() bool { return s&StyleWideSpacer != 0 }

// dimFactor darkens a dim cell's foreground.
const dimFactor = 0.6

// Cell is one character position in the grid.
type Cell struct {
	Rune  rune
	FG    CellColor
	BG    CellColor
	Style Style
}

// Blank reports whether the cell draws no glyph.
func (c Cell) Blank() bool {
	return c.Rune == 0 || c.Rune == ' '
}

// Colors resolves the cell's effective foreground and background against
// the scheme, applying bold brightening, dim, and inverse.
func (c Cell) Colors(scheme *crt.ColorScheme) (fg, bg crt.Color) {
	fgc := c.FG
	if c.Style.Bold() && fgc.Kind == ColorNamed && fgc.Index < 8 {
		fgc.Index += 8
	}
	fg = fgc.Resolve(scheme, true)
	bg = c.BG.Resolve(scheme, false)
	if c.Style.Dim() {
		fg = fg.Scale(dimFactor)
	}
	if c.Style.Inverse() {
		fg, bg = bg, fg
	}
	return fg, bg
}

// Cursor is the pane's cursor state for one frame.
type Cursor struct {
	Col     int
	Row     int
	Visible bool
}

// Grid is what the renderer consumes from a terminal pane each frame:
// an ordered cell grid, the cursor, and the scrollback offset
// (0 = live bottom).
type Grid interface {
	Size() (cols, rows int)
	// CellAt returns the cell at the position, or the zero Cell when out
	// of range.
	CellAt(col, row int) Cell
	Cursor() Cursor
	ScrollOffset() int
}
