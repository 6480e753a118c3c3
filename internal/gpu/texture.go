package gpu

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/crt"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

// Texture errors.
var (
	// ErrTextureReleased is returned when operating on a released texture.
	ErrTextureReleased = errors.New("gpu: texture has been released")

	// ErrTextureSizeMismatch is returned when pixmap size doesn't match
	// the texture.
	ErrTextureSizeMismatch = errors.New("gpu: pixmap size does not match texture")

	// ErrNilPixmap is returned when the pixmap is nil.
	ErrNilPixmap = errors.New("gpu: pixmap is nil")

	// ErrInvalidDimensions is returned for non-positive texture sizes.
	ErrInvalidDimensions = errors.New("gpu: invalid texture dimensions")
)

// DefaultTextureUsage covers the pipeline's needs: sampled in effect
// passes, written by uploads, readable for presentation copies.
const DefaultTextureUsage = types.TextureUsageCopySrc |
	types.TextureUsageCopyDst | types.TextureUsageTextureBinding

// TextureConfig holds parameters for creating a texture.
type TextureConfig struct {
	Width  int
	Height int
	Format types.TextureFormat
	Usage  types.TextureUsage
	Label  string
}

// Texture wraps a HAL texture with its default view. Safe for
// concurrent reads; Upload and Release need external synchronization,
// which the single rendering thread provides.
type Texture struct {
	tex  hal.Texture
	view hal.TextureView

	device *Device

	width, height int
	format        types.TextureFormat
	label         string

	released atomic.Bool
}

// CreateTexture creates a GPU texture. The contents are undefined until
// the first Upload.
func CreateTexture(d *Device, config TextureConfig) (*Texture, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, ErrInvalidDimensions
	}
	usage := config.Usage
	if usage == 0 {
		usage = DefaultTextureUsage
	}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: config.Label,
		Size: hal.Extent3D{
			Width:              uint32(config.Width),
			Height:             uint32(config.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        config.Format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create texture %q: %w", config.Label, err)
	}

	// Zero values inherit from the texture.
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:  config.Label,
		Format: types.TextureFormatUndefined,
		Aspect: types.TextureAspectAll,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create texture view %q: %w", config.Label, err)
	}

	return &Texture{
		tex:    tex,
		view:   view,
		device: d,
		width:  config.Width,
		height: config.Height,
		format: config.Format,
		label:  config.Label,
	}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the texture pixel format.
func (t *Texture) Format() types.TextureFormat { return t.format }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// View returns the default texture view for binding.
func (t *Texture) View() hal.TextureView { return t.view }

// Raw returns the underlying HAL texture.
func (t *Texture) Raw() hal.Texture { return t.tex }

// Upload writes a pixmap's RGBA pixels into the texture through the
// device queue. The pixmap must match the texture dimensions exactly.
func (t *Texture) Upload(pix *crt.Pixmap) error {
	if t.released.Load() {
		return ErrTextureReleased
	}
	if pix == nil {
		return ErrNilPixmap
	}
	if pix.Width() != t.width || pix.Height() != t.height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrTextureSizeMismatch,
			pix.Width(), pix.Height(), t.width, t.height)
	}

	t.device.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   types.TextureAspectAll,
		},
		pix.Data(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.width * 4),
			RowsPerImage: uint32(t.height),
		},
		&hal.Extent3D{
			Width:              uint32(t.width),
			Height:             uint32(t.height),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// UploadAlpha writes single-channel coverage data (the glyph atlas) into
// an R8 texture.
func (t *Texture) UploadAlpha(data []uint8) error {
	if t.released.Load() {
		return ErrTextureReleased
	}
	if len(data) != t.width*t.height {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrTextureSizeMismatch,
			len(data), t.width, t.height)
	}

	t.device.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   types.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.width),
			RowsPerImage: uint32(t.height),
		},
		&hal.Extent3D{
			Width:              uint32(t.width),
			Height:             uint32(t.height),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// Release destroys the texture and its view. Safe to call twice.
func (t *Texture) Release() {
	if t.released.Swap(true) {
		return
	}
	t.device.device.DestroyTextureView(t.view)
	t.device.device.DestroyTexture(t.tex)
}
