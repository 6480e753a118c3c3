package crt

import (
	"image"
	"image/png"
	"os"
)

// Pixmap represents a rectangular RGBA pixel buffer. It is the CPU-side
// texture type for every render target in the pipeline: pane text targets,
// effect outputs, burn-in resolve buffers, and the final presented frame.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel. Out-of-bounds coordinates
// return Transparent.
func (p *Pixmap) GetPixel(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Color{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c Color) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// FillRect fills an axis-aligned rectangle, clipped to the pixmap bounds.
func (p *Pixmap) FillRect(x, y, w, h int, c Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, p.width), min(y+h, p.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))
	for yy := y0; yy < y1; yy++ {
		i := (yy*p.width + x0) * 4
		for xx := x0; xx < x1; xx++ {
			p.data[i+0] = r
			p.data[i+1] = g
			p.data[i+2] = b
			p.data[i+3] = a
			i += 4
		}
	}
}

// SampleUV returns the bilinearly filtered color at normalized coordinates
// (u, v) in [0, 1], with clamp-to-edge addressing. This matches the
// linear/clamp sampler the GPU path uses for effect passes.
func (p *Pixmap) SampleUV(u, v float64) Color {
	fx := u*float64(p.width) - 0.5
	fy := v*float64(p.height) - 0.5
	x0 := int(floor(fx))
	y0 := int(floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := p.getClamped(x0, y0)
	c10 := p.getClamped(x0+1, y0)
	c01 := p.getClamped(x0, y0+1)
	c11 := p.getClamped(x0+1, y0+1)

	top := c00.Lerp(c10, tx)
	bot := c01.Lerp(c11, tx)
	return top.Lerp(bot, ty)
}

// getClamped reads a pixel with clamp-to-edge addressing.
func (p *Pixmap) getClamped(x, y int) Color {
	if x < 0 {
		x = 0
	} else if x >= p.width {
		x = p.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= p.height {
		y = p.height - 1
	}
	i := (y*p.width + x) * 4
	return Color{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := NewPixmap(p.width, p.height)
	copy(out.data, p.data)
	return out
}

// Blit copies src into p with its top-left corner at (x, y), clipped to
// the destination bounds. No blending is performed.
func (p *Pixmap) Blit(src *Pixmap, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= p.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= p.width {
				continue
			}
			si := (sy*src.width + sx) * 4
			di := (dy*p.width + dx) * 4
			copy(p.data[di:di+4], src.data[si:si+4])
		}
	}
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}
	return pm
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, p.ToImage())
}

func floor(v float64) float64 {
	iv := float64(int(v))
	if v < 0 && v != iv {
		return iv - 1
	}
	return iv
}
