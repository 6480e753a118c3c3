// Package atlas maps (codepoint, font, size) to rasterized glyph bitmaps
// packed into a single shared texture.
//
// The glyph set is bounded by design: printable ASCII, the box-drawing and
// block-element runs used for pane decoration, and one placeholder glyph.
// The atlas capacity is therefore fixed per session and overflowing it is a
// configuration defect, reported as a fatal error rather than recovered.
//
// Changing the font or size discards the whole atlas; it is rebuilt lazily
// on the next glyph request. With the bounded glyph set a full rebuild is
// cheap, so no incremental re-packing is attempted.
package atlas

import (
	"errors"
	"fmt"

	"github.com/gogpu/crt"
)

// Size is the fixed atlas texture dimension (Size x Size, single channel).
const Size = 1024

// Placeholder is the glyph substituted for codepoints outside the
// supported set.
const Placeholder = '?'

// glyphPadding keeps one blank pixel between packed bitmaps so linear
// sampling never bleeds into a neighbor.
const glyphPadding = 1

// ErrAtlasFull is returned when the fixed atlas capacity is exhausted.
// The character set is fixed by design, so this indicates a configuration
// defect (e.g. an enormous font size), not a runtime condition to recover
// from; callers should treat it as fatal at startup.
var ErrAtlasFull = errors.New("atlas: texture capacity exhausted")

// Entry locates one glyph inside the atlas texture.
type Entry struct {
	// U0, V0, U1, V1 are the normalized texture coordinates of the
	// glyph's sub-rectangle.
	U0, V0, U1, V1 float64

	// Width and Height are the bitmap dimensions in pixels. Both are
	// zero for whitespace glyphs.
	Width, Height int

	// BearingX and BearingY place the bitmap relative to the pen
	// position on the baseline (Y grows downward).
	BearingX, BearingY float64

	// Advance is the horizontal pen advance.
	Advance float64
}

// Atlas owns the packed glyph texture and all entries. Entries are never
// evicted within a session. The atlas is exclusively mutated by glyph
// misses and font changes, both rare, synchronous operations relative to
// the render loop; within a frame all panes read it concurrently.
type Atlas struct {
	source *FontSource
	raster Rasterizer
	size   float64

	cellW, cellH float64
	ascent       float64

	glyphs map[rune]Entry
	packer *shelfPacker
	data   []uint8 // Size*Size single-channel coverage

	// generation increments on every rebuild so GPU uploaders know when
	// the whole texture must be re-sent rather than patched.
	generation uint64
	dirty      bool
}

// New creates an atlas for the font source at the given pixel size.
func New(source *FontSource, size float64) *Atlas {
	a := &Atlas{
		source: source,
		raster: NewRasterizer(source),
		size:   size,
	}
	a.rebuild()
	return a
}

// NewWithRasterizer creates an atlas with an explicit rasterizer and cell
// metrics, bypassing font parsing. Intended for tests and for embedding
// bitmap-font collaborators.
func NewWithRasterizer(r Rasterizer, cellW, cellH, ascent float64) *Atlas {
	a := &Atlas{
		raster: r,
		size:   cellH,
		cellW:  cellW,
		cellH:  cellH,
		ascent: ascent,
	}
	a.glyphs = make(map[rune]Entry)
	a.packer = newShelfPacker(Size, Size, glyphPadding)
	a.data = make([]uint8, Size*Size)
	a.generation++
	a.dirty = true
	return a
}

// rebuild discards all entries and packing state. Glyphs repopulate lazily.
func (a *Atlas) rebuild() {
	a.glyphs = make(map[rune]Entry)
	a.packer = newShelfPacker(Size, Size, glyphPadding)
	a.data = make([]uint8, Size*Size)
	a.generation++
	a.dirty = true
	if a.source != nil {
		a.cellW, a.cellH, a.ascent = a.source.CellMetrics(a.size)
	}
	crt.Logger().Info("atlas: rebuilt",
		"size", a.size, "cell_w", a.cellW, "cell_h", a.cellH)
}

// SetFont switches the font and/or pixel size. The atlas is fully
// discarded; glyphs are rasterized again on demand.
func (a *Atlas) SetFont(source *FontSource, size float64) {
	a.source = source
	a.raster = NewRasterizer(source)
	a.size = size
	a.rebuild()
}

// CellSize returns the terminal cell dimensions in pixels.
func (a *Atlas) CellSize() (w, h float64) {
	return a.cellW, a.cellH
}

// Ascent returns the baseline offset from the cell top in pixels.
func (a *Atlas) Ascent() float64 {
	return a.ascent
}

// Generation returns the rebuild counter. It changes whenever previously
// returned entries become invalid.
func (a *Atlas) Generation() uint64 {
	return a.generation
}

// Data returns the raw single-channel texture data (Size*Size bytes).
func (a *Atlas) Data() []uint8 {
	return a.data
}

// Dirty reports whether the texture changed since the last MarkClean,
// either from a rebuild or an incremental upload.
func (a *Atlas) Dirty() bool {
	return a.dirty
}

// MarkClean acknowledges an upload of the current texture contents.
func (a *Atlas) MarkClean() {
	a.dirty = false
}

// Glyph returns the atlas entry for r, rasterizing and packing it on a
// miss. Codepoints the font cannot render fall back to the placeholder
// glyph. The only possible error is ErrAtlasFull.
func (a *Atlas) Glyph(r rune) (Entry, error) {
	if e, ok := a.glyphs[r]; ok {
		return e, nil
	}

	mask, ok := a.raster.Rasterize(r, a.size)
	if !ok && r != Placeholder {
		// Record the miss under the original rune so the lookup
		// stays O(1) on subsequent frames.
		e, err := a.Glyph(Placeholder)
		if err != nil {
			return Entry{}, err
		}
		a.glyphs[r] = e
		return e, nil
	}
	if !ok {
		return Entry{}, fmt.Errorf("atlas: font has no glyph for %q", r)
	}

	e := Entry{
		Width:    mask.Width,
		Height:   mask.Height,
		BearingX: mask.BearingX,
		BearingY: mask.BearingY,
		Advance:  mask.Advance,
	}

	if mask.Width > 0 && mask.Height > 0 {
		x, y, ok := a.packer.allocate(mask.Width, mask.Height)
		if !ok {
			return Entry{}, fmt.Errorf("%w (glyph %q at %gpx, utilization %.0f%%)",
				ErrAtlasFull, r, a.size, a.packer.utilization()*100)
		}
		for row := 0; row < mask.Height; row++ {
			dst := (y+row)*Size + x
			src := row * mask.Width
			copy(a.data[dst:dst+mask.Width], mask.Alpha[src:src+mask.Width])
		}
		e.U0 = float64(x) / Size
		e.V0 = float64(y) / Size
		e.U1 = float64(x+mask.Width) / Size
		e.V1 = float64(y+mask.Height) / Size
		a.dirty = true
	}

	a.glyphs[r] = e
	return e, nil
}

// Prepopulate rasterizes the whole bounded character set up front:
// printable ASCII, the placeholder, and the box-drawing/block runs.
// An overflow here is fatal configuration, per the atlas contract.
func (a *Atlas) Prepopulate() error {
	for r := rune(' '); r <= '~'; r++ {
		if _, err := a.Glyph(r); err != nil {
			return err
		}
	}
	for _, r := range BoxDrawing {
		if _, err := a.Glyph(r); err != nil {
			return err
		}
	}
	return nil
}

// BoxDrawing is the set of non-ASCII codepoints the renderer treats as
// first-class glyphs: line-drawing and the block elements used for the
// cursor and pane decoration.
var BoxDrawing = []rune{
	'─', '│', '┌', '┐', '└', '┘', '├', '┤', '┬', '┴', '┼',
	'═', '║', '╔', '╗', '╚', '╝',
	'█', '▌', '▐', '▀', '▄', '░', '▒', '▓',
}

// IsRenderable reports whether r belongs to the bounded glyph set:
// ASCII or one of the box-drawing/block codepoints. Everything else is
// collapsed to the placeholder by the compositor.
func IsRenderable(r rune) bool {
	if r < 0x80 {
		return true
	}
	for _, b := range BoxDrawing {
		if r == b {
			return true
		}
	}
	return false
}
