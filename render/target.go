package render

import (
	"github.com/gogpu/crt"
	"github.com/gogpu/gputypes"
)

// RenderTarget defines where a composed frame goes.
//
// A RenderTarget is an abstraction over rendering destinations:
//   - PixmapTarget: CPU-backed pixel buffer
//   - GPU-backed window surfaces provided by the host via the gpu package
//
// The CPU pipeline renders into Pixmap; GPU presentation uploads the same
// pixels to a texture of the target's Format.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixmap returns the CPU pixel buffer backing the target.
	Pixmap() *crt.Pixmap
}

// PixmapTarget is a CPU-backed render target.
type PixmapTarget struct {
	pix *crt.Pixmap
}

// NewPixmapTarget creates a CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{pix: crt.NewPixmap(width, height)}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.pix.Width()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.pix.Height()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixmap returns the underlying pixel buffer. It shares memory with the
// target.
func (t *PixmapTarget) Pixmap() *crt.Pixmap {
	return t.pix
}

// Resize reallocates the target buffer. Contents are discarded.
func (t *PixmapTarget) Resize(width, height int) {
	t.pix = crt.NewPixmap(width, height)
}
