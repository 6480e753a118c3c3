package gpu

import (
	"errors"
	"sync"

	"github.com/gogpu/crt"
	"github.com/gogpu/gpucontext"
	types "github.com/gogpu/gputypes"
)

// ErrNotInitialized is returned when presenting before Init succeeded.
var ErrNotInitialized = errors.New("gpu: presenter not initialized")

// Presenter turns finished CPU frames into a presentable GPU target.
// Each Present uploads the pixmap to the frame texture and runs the
// blit pass into the present texture, a render attachment sized to the
// last presented frame.
type Presenter struct {
	mu      sync.Mutex
	device  *Device
	shaders *ShaderModules
	blit    *BlitPipeline
	frame   *Texture
	present *Texture
}

// NewPresenter returns an uninitialized presenter. Init acquires the
// GPU resources.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Name returns the backend name.
func (p *Presenter) Name() string { return "wgpu" }

// Init opens a standalone device, compiles the shader set, and builds
// the blit pipeline. Any failure is fatal: the presenter stays
// unregistered and rendering remains CPU-only.
func (p *Presenter) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device != nil {
		return nil
	}
	return p.initLocked(nil)
}

// initLocked acquires GPU resources on the given device, opening a
// standalone one when d is nil. Caller holds p.mu.
func (p *Presenter) initLocked(d *Device) error {
	var err error
	if d == nil {
		d, err = Open()
		if err != nil {
			return err
		}
	}
	shaders, err := CompileShaders(d)
	if err != nil {
		d.Close()
		return err
	}
	blit, err := NewBlitPipeline(d, shaders.Blit, types.TextureFormatRGBA8Unorm)
	if err != nil {
		shaders.Destroy(d)
		d.Close()
		return err
	}

	p.device = d
	p.shaders = shaders
	p.blit = blit
	return nil
}

// SetDeviceProvider swaps the standalone device for one shared by the
// host application and rebuilds the shader set and blit pipeline on it.
func (p *Presenter) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	d, err := FromProvider(provider)
	if err != nil {
		return err
	}

	p.mu.Lock()
	old, oldShaders, oldBlit := p.device, p.shaders, p.blit
	oldFrame, oldPresent := p.frame, p.present
	p.device, p.shaders, p.blit = nil, nil, nil
	p.frame, p.present = nil, nil
	err = p.initLocked(d)
	p.mu.Unlock()
	if err != nil {
		return err
	}

	if oldFrame != nil {
		oldFrame.Release()
	}
	if oldPresent != nil {
		oldPresent.Release()
	}
	if oldBlit != nil {
		oldBlit.Destroy()
	}
	if oldShaders != nil && old != nil {
		oldShaders.Destroy(old)
	}
	if old != nil {
		old.Close()
	}
	return nil
}

// Present uploads the frame pixmap to the GPU frame texture and blits
// it into the present target, recreating both when the frame size
// changes.
func (p *Presenter) Present(frame *crt.Pixmap) error {
	if frame == nil {
		return ErrNilPixmap
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return ErrNotInitialized
	}

	if p.frame == nil || p.frame.Width() != frame.Width() || p.frame.Height() != frame.Height() {
		if p.frame != nil {
			p.frame.Release()
			p.frame = nil
		}
		if p.present != nil {
			p.present.Release()
			p.present = nil
		}
		tex, err := CreateTexture(p.device, TextureConfig{
			Width:  frame.Width(),
			Height: frame.Height(),
			Format: types.TextureFormatRGBA8Unorm,
			Label:  "crt-frame",
		})
		if err != nil {
			return err
		}
		target, err := CreateTexture(p.device, TextureConfig{
			Width:  frame.Width(),
			Height: frame.Height(),
			Format: types.TextureFormatRGBA8Unorm,
			Usage:  types.TextureUsageRenderAttachment | types.TextureUsageCopySrc,
			Label:  "crt-present",
		})
		if err != nil {
			tex.Release()
			return err
		}
		p.frame = tex
		p.present = target
	}

	if err := p.frame.Upload(frame); err != nil {
		return err
	}
	return p.blit.Blit(p.frame, p.present)
}

// Frame returns the current frame texture, nil before the first Present.
func (p *Presenter) Frame() *Texture {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// Target returns the present texture the blit pass renders into, nil
// before the first Present.
func (p *Presenter) Target() *Texture {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.present
}

// Close releases all GPU resources.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frame != nil {
		p.frame.Release()
		p.frame = nil
	}
	if p.present != nil {
		p.present.Release()
		p.present = nil
	}
	if p.blit != nil {
		p.blit.Destroy()
		p.blit = nil
	}
	if p.shaders != nil && p.device != nil {
		p.shaders.Destroy(p.device)
		p.shaders = nil
	}
	if p.device != nil {
		p.device.Close()
		p.device = nil
	}
}
