package crt

import (
	"image"
	"image/color"
	"testing"
)

func TestNewPixmapClampsDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		wantW, wantH int
	}{
		{"normal", 10, 20, 10, 20},
		{"zero width", 0, 5, 1, 5},
		{"zero height", 5, 0, 5, 1},
		{"negative", -3, -7, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPixmap(tt.w, tt.h)
			if p.Width() != tt.wantW || p.Height() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", p.Width(), p.Height(), tt.wantW, tt.wantH)
			}
			if len(p.Data()) != tt.wantW*tt.wantH*4 {
				t.Errorf("data length %d, want %d", len(p.Data()), tt.wantW*tt.wantH*4)
			}
		})
	}
}

func TestSetGetPixel(t *testing.T) {
	p := NewPixmap(10, 10)
	p.SetPixel(3, 7, RGB(1, 0.5, 0))

	c := p.GetPixel(3, 7)
	const tolerance = 1.0 / 255
	if absDiff(c.R, 1) > tolerance || absDiff(c.G, 0.5) > tolerance || absDiff(c.B, 0) > tolerance {
		t.Errorf("got (%.3f, %.3f, %.3f), want (1, 0.5, 0)", c.R, c.G, c.B)
	}
	if c.A != 1 {
		t.Errorf("alpha = %.3f, want 1", c.A)
	}
}

func TestSetPixelOutOfBoundsIgnored(t *testing.T) {
	p := NewPixmap(10, 10)
	p.Clear(Black)
	original := make([]uint8, len(p.Data()))
	copy(original, p.Data())

	oob := []struct{ x, y int }{
		{-1, 5}, {10, 5}, {5, -1}, {5, 10},
		{-100, -100}, {100, 100},
	}
	for _, c := range oob {
		p.SetPixel(c.x, c.y, White)
	}
	for i, v := range p.Data() {
		if v != original[i] {
			t.Fatalf("out-of-bounds write modified data at index %d", i)
		}
	}
}

func TestGetPixelOutOfBoundsTransparent(t *testing.T) {
	p := NewPixmap(4, 4)
	p.Clear(White)
	if c := p.GetPixel(-1, 0); c != Transparent {
		t.Errorf("got %v, want Transparent", c)
	}
	if c := p.GetPixel(4, 4); c != Transparent {
		t.Errorf("got %v, want Transparent", c)
	}
}

func TestFillRectClipped(t *testing.T) {
	p := NewPixmap(10, 10)
	p.Clear(Black)
	p.FillRect(-2, -2, 5, 5, White)

	// Inside the clipped region.
	if c := p.GetPixel(0, 0); c.R != 1 {
		t.Error("pixel (0,0) not filled")
	}
	if c := p.GetPixel(2, 2); c.R != 1 {
		t.Error("pixel (2,2) not filled")
	}
	// Outside.
	if c := p.GetPixel(3, 3); c.R != 0 {
		t.Error("pixel (3,3) should not be filled")
	}

	// Degenerate rect is a no-op.
	p.FillRect(5, 5, 0, 3, White)
	if c := p.GetPixel(5, 5); c.R != 0 {
		t.Error("zero-width fill modified pixels")
	}
}

func TestSampleUVBilinear(t *testing.T) {
	p := NewPixmap(2, 1)
	p.SetPixel(0, 0, Black)
	p.SetPixel(1, 0, White)

	// Midpoint between the two texel centers.
	c := p.SampleUV(0.5, 0.5)
	if absDiff(c.R, 0.5) > 0.01 {
		t.Errorf("midpoint R = %.3f, want 0.5", c.R)
	}

	// Clamp-to-edge beyond the borders.
	if c := p.SampleUV(-1, 0.5); absDiff(c.R, 0) > 0.01 {
		t.Errorf("left clamp R = %.3f, want 0", c.R)
	}
	if c := p.SampleUV(2, 0.5); absDiff(c.R, 1) > 0.01 {
		t.Errorf("right clamp R = %.3f, want 1", c.R)
	}
}

func TestCloneIndependent(t *testing.T) {
	p := NewPixmap(4, 4)
	p.Clear(White)
	q := p.Clone()
	p.SetPixel(0, 0, Black)

	if c := q.GetPixel(0, 0); c.R != 1 {
		t.Error("clone shares storage with the original")
	}
}

func TestBlitClipped(t *testing.T) {
	dst := NewPixmap(4, 4)
	dst.Clear(Black)
	src := NewPixmap(2, 2)
	src.Clear(White)

	dst.Blit(src, 3, 3)
	if c := dst.GetPixel(3, 3); c.R != 1 {
		t.Error("in-bounds blit pixel not copied")
	}
	if c := dst.GetPixel(2, 2); c.R != 0 {
		t.Error("blit wrote outside the source placement")
	}

	// Fully out of bounds must not panic.
	dst.Blit(src, -10, -10)
}

func TestImageRoundTrip(t *testing.T) {
	p := NewPixmap(3, 2)
	p.SetPixel(0, 0, RGB(1, 0, 0))
	p.SetPixel(2, 1, RGB(0, 0, 1))

	img := p.ToImage()
	if got := img.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", got)
	}
	q := FromImage(img)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			a, b := p.GetPixel(x, y), q.GetPixel(x, y)
			if absDiff(a.R, b.R) > 0.01 || absDiff(a.G, b.G) > 0.01 || absDiff(a.B, b.B) > 0.01 {
				t.Errorf("pixel (%d,%d): %v != %v", x, y, a, b)
			}
		}
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 7))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	p := FromImage(img)
	if p.Width() != 3 || p.Height() != 2 {
		t.Fatalf("got %dx%d, want 3x2", p.Width(), p.Height())
	}
	if c := p.GetPixel(0, 0); absDiff(c.R, 1) > 0.01 {
		t.Errorf("offset origin pixel R = %.3f, want 1", c.R)
	}
}
