package compose

import (
	"testing"

	"github.com/gogpu/crt"
	"github.com/gogpu/crt/atlas"
	"github.com/gogpu/crt/term"
)

// solidRasterizer emits uniform square masks so compose tests need no
// font files.
type solidRasterizer struct{ n int }

func (s solidRasterizer) Rasterize(r rune, size float64) (atlas.Mask, bool) {
	if r == ' ' {
		return atlas.Mask{Advance: float64(s.n)}, true
	}
	alpha := make([]uint8, s.n*s.n)
	for i := range alpha {
		alpha[i] = 0xff
	}
	return atlas.Mask{
		Alpha: alpha, Width: s.n, Height: s.n,
		BearingY: -float64(s.n), Advance: float64(s.n),
	}, true
}

func newTestCompositor() *Compositor {
	a := atlas.NewWithRasterizer(solidRasterizer{n: 8}, 8, 12, 9)
	return New(a, crt.DefaultScheme())
}

func TestComposeEmitsBackgroundAndGlyphQuads(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(4, 1)
	b.WriteString(0, 0, "ab", term.DefaultColor(), term.DefaultColor(), 0)

	dl, err := c.Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := len(dl.Backgrounds); got != 4 {
		t.Errorf("background quads = %d, want 4", got)
	}
	if got := len(dl.Glyphs); got != 2 {
		t.Errorf("glyph quads = %d, want 2", got)
	}
	// Cell positions follow the atlas cell size.
	if dl.Backgrounds[1].X != 8 || dl.Backgrounds[1].W != 8 || dl.Backgrounds[1].H != 12 {
		t.Errorf("second background quad = %+v", dl.Backgrounds[1])
	}
}

func TestComposeCollapsesNonASCIIRuns(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(6, 1)
	b.WriteString(0, 0, "世界世界世A", term.DefaultColor(), term.DefaultColor(), 0)

	dl, err := c.Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// Five consecutive non-ASCII cells and one 'A': exactly two visible
	// glyphs, one placeholder and the 'A'. The four trailing run cells
	// emit nothing, backgrounds included.
	if got := len(dl.Glyphs); got != 2 {
		t.Fatalf("glyph quads = %d, want 2", got)
	}
	if got := len(dl.Backgrounds); got != 2 {
		t.Errorf("background quads = %d, want 2", got)
	}
	if dl.Glyphs[0].X != 0 {
		t.Errorf("placeholder at X=%v, want 0", dl.Glyphs[0].X)
	}
	want, _ := c.Atlas().Glyph(atlas.Placeholder)
	if dl.Glyphs[0].U0 != want.U0 || dl.Glyphs[0].V0 != want.V0 {
		t.Errorf("first glyph UV = (%v,%v), want placeholder (%v,%v)",
			dl.Glyphs[0].U0, dl.Glyphs[0].V0, want.U0, want.V0)
	}
}

func TestComposeRunCollapseResetsPerRow(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(2, 2)
	b.WriteString(0, 0, "世世", term.DefaultColor(), term.DefaultColor(), 0)
	b.WriteString(0, 1, "世世", term.DefaultColor(), term.DefaultColor(), 0)

	dl, err := c.Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// A run never continues across a row boundary.
	if got := len(dl.Glyphs); got != 2 {
		t.Errorf("glyph quads = %d, want 2 (one placeholder per row)", got)
	}
}

func TestComposeRunBrokenByASCII(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(5, 1)
	b.WriteString(0, 0, "世a世世b", term.DefaultColor(), term.DefaultColor(), 0)

	dl, err := c.Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// Two separate runs collapse independently: placeholder, 'a',
	// placeholder, 'b'.
	if got := len(dl.Glyphs); got != 4 {
		t.Errorf("glyph quads = %d, want 4", got)
	}
}

func TestComposeBoxDrawingIsNotCollapsed(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(4, 1)
	b.WriteString(0, 0, "─│┌█", term.DefaultColor(), term.DefaultColor(), 0)

	dl, err := c.Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := len(dl.Glyphs); got != 4 {
		t.Errorf("glyph quads = %d, want 4 (box drawing renders directly)", got)
	}
	if got := len(dl.Backgrounds); got != 4 {
		t.Errorf("background quads = %d, want 4", got)
	}
}

func TestComposeSkipsWideSpacers(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(3, 1)
	b.SetCell(0, 0, term.Cell{Rune: 'W'})
	b.SetCell(1, 0, term.Cell{Rune: ' ', Style: term.StyleWideSpacer})
	b.SetCell(2, 0, term.Cell{Rune: 'x'})

	dl, err := c.Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := len(dl.Backgrounds); got != 2 {
		t.Errorf("background quads = %d, want 2 (spacer emits nothing)", got)
	}
	if got := len(dl.Glyphs); got != 2 {
		t.Errorf("glyph quads = %d, want 2", got)
	}
}

func TestComposeCursorOnTop(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(3, 2)
	b.SetCursor(1, 1, true)

	dl, err := c.Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if dl.Cursor == nil {
		t.Fatal("visible cursor emitted no quad")
	}
	scheme := crt.DefaultScheme()
	if dl.Cursor.Color != scheme.Accent {
		t.Errorf("cursor color = %+v, want accent %+v", dl.Cursor.Color, scheme.Accent)
	}
	if dl.Cursor.X != 8 || dl.Cursor.Y != 12 {
		t.Errorf("cursor at (%v,%v), want (8,12)", dl.Cursor.X, dl.Cursor.Y)
	}

	b.SetCursor(1, 1, false)
	dl, _ = c.Compose(b, nil)
	if dl.Cursor != nil {
		t.Error("hidden cursor still emitted a quad")
	}
}

func TestComposeSelectionSwapsColors(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(3, 1)
	b.WriteString(0, 0, "abc", term.Named(7), term.Named(0), 0)

	sel := &Selection{StartCol: 1, StartRow: 0, EndCol: 1, EndRow: 0}
	dl, err := c.Compose(b, sel)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	scheme := crt.DefaultScheme()
	if dl.Backgrounds[1].Color != scheme.Palette[7] {
		t.Errorf("selected bg = %+v, want fg %+v", dl.Backgrounds[1].Color, scheme.Palette[7])
	}
	if dl.Glyphs[1].Color != scheme.Palette[0] {
		t.Errorf("selected glyph = %+v, want bg %+v", dl.Glyphs[1].Color, scheme.Palette[0])
	}
	// Unselected neighbors keep the normal mapping.
	if dl.Backgrounds[0].Color != scheme.Palette[0] {
		t.Errorf("unselected bg = %+v, want %+v", dl.Backgrounds[0].Color, scheme.Palette[0])
	}
}

func TestSelectionContains(t *testing.T) {
	sel := Selection{StartCol: 2, StartRow: 1, EndCol: 1, EndRow: 3}
	tests := []struct {
		col, row int
		want     bool
	}{
		{0, 0, false},
		{1, 1, false},
		{2, 1, true},
		{9, 1, true},
		{0, 2, true},
		{1, 3, true},
		{2, 3, false},
		{0, 4, false},
	}
	for _, tt := range tests {
		if got := sel.Contains(tt.col, tt.row); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestRenderDrawsIntoPixmap(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(2, 1)
	b.SetCell(0, 0, term.Cell{Rune: 'A', FG: term.RGB(255, 0, 0)})

	dl, err := c.Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	dst := crt.NewPixmap(32, 16)
	dst.Clear(crt.Black)
	c.Render(dst, dl, 0, 0)

	// Glyph sits above the baseline: cell (0,0), ascent 9, bitmap 8 tall,
	// so rows 1..8 in column 0..7 carry the solid red mask.
	got := dst.GetPixel(3, 4)
	if got.R < 0.9 || got.G > 0.1 {
		t.Errorf("glyph pixel = %+v, want red", got)
	}
	// Background of the blank second cell is the scheme background.
	scheme := crt.DefaultScheme()
	bgPix := dst.GetPixel(12, 4)
	if !colorClose(bgPix, scheme.Background) {
		t.Errorf("background pixel = %+v, want %+v", bgPix, scheme.Background)
	}
}

func TestRenderHonorsOffset(t *testing.T) {
	c := newTestCompositor()
	b := term.NewBuffer(1, 1)
	b.SetCell(0, 0, term.Cell{Rune: 'A', FG: term.RGB(0, 255, 0)})

	dl, _ := c.Compose(b, nil)
	dst := crt.NewPixmap(40, 40)
	dst.Clear(crt.Black)
	c.Render(dst, dl, 20, 20)

	if got := dst.GetPixel(3, 4); got.G > 0.1 {
		t.Errorf("pixel before offset = %+v, want black", got)
	}
	if got := dst.GetPixel(23, 24); got.G < 0.9 {
		t.Errorf("pixel after offset = %+v, want green", got)
	}
}

func colorClose(a, b crt.Color) bool {
	const eps = 0.02
	abs := func(v float64) float64 {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(a.R-b.R) < eps && abs(a.G-b.G) < eps && abs(a.B-b.B) < eps
}
