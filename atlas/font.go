package atlas

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontSource is a parsed monospace font usable by the atlas. The same font
// data is parsed twice on purpose: go-text/typesetting supplies shaping and
// metrics, while x/image's sfnt form drives glyph rasterization. Both
// parsed forms are read-only and safe to share.
type FontSource struct {
	data   []byte
	gotext *font.Face
	sfnt   *sfnt.Font
}

// NewFontSource parses TTF/OTF font data.
func NewFontSource(data []byte) (*FontSource, error) {
	gtFace, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("atlas: parse font: %w", err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("atlas: parse font outlines: %w", err)
	}
	return &FontSource{data: data, gotext: gtFace, sfnt: sf}, nil
}

// CellMetrics measures the terminal cell for the font at the given pixel
// size. The cell width is the shaped advance of a reference glyph ('M',
// every cell in a monospace grid shares it); the cell height is the pixel
// size, and ascent is the baseline offset from the cell top.
//
// Shaping goes through HarfBuzz via go-text/typesetting so that fonts with
// unusual advance tables measure the same way they would in a full text
// stack.
func (s *FontSource) CellMetrics(size float64) (cellW, cellH, ascent float64) {
	runes := []rune{'M'}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      s.gotext,
		Size:      floatToFixed(size),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(input)

	cellW = fixedToFloat(out.Advance)
	cellH = size
	ascent = fixedToFloat(out.LineBounds.Ascent)
	if cellW <= 0 {
		cellW = size * 0.6
	}
	if ascent <= 0 || ascent > cellH {
		ascent = size * 0.8
	}
	return cellW, cellH, ascent
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
