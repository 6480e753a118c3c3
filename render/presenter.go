package render

import (
	"errors"
	"sync"

	"github.com/gogpu/crt"
)

// ErrFallbackToCPU indicates the presenter cannot handle this frame.
// The caller keeps the CPU pixmap as the presented result.
var ErrFallbackToCPU = errors.New("render: falling back to CPU presentation")

// Presenter is an optional GPU presentation provider.
//
// When registered via RegisterPresenter, the Renderer hands each finished
// frame to the presenter after CPU compositing. If the presenter returns
// ErrFallbackToCPU or any error, the frame stays CPU-only and remains
// readable through Target().
//
// Implementations are provided by GPU backend packages. Users opt in via
// blank import:
//
//	import _ "github.com/gogpu/crt/gpu" // enables GPU presentation
type Presenter interface {
	// Name returns the presenter name (e.g., "wgpu").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// Present uploads a finished frame for display.
	Present(frame *crt.Pixmap) error
}

// DeviceProviderAware is implemented by presenters that can share a GPU
// device owned by the host application instead of creating their own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider DeviceHandle) error
}

var (
	presenterMu sync.RWMutex
	presenter   Presenter
)

// RegisterPresenter registers a GPU presenter.
//
// Only one presenter can be registered. Subsequent calls replace the
// previous one. The presenter's Init() method is called during
// registration; if it fails, the presenter is not registered and the
// error is returned.
func RegisterPresenter(p Presenter) error {
	if p == nil {
		return errors.New("render: presenter must not be nil")
	}
	if err := p.Init(); err != nil {
		return err
	}
	presenterMu.Lock()
	old := presenter
	presenter = p
	presenterMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// ActivePresenter returns the registered presenter, or nil if none.
func ActivePresenter() Presenter {
	presenterMu.RLock()
	p := presenter
	presenterMu.RUnlock()
	return p
}

// SetPresenterDeviceProvider passes a device provider to the registered
// presenter, enabling GPU device sharing. A no-op when no presenter is
// registered or it does not support device sharing.
//
// HAL access follows the gpucontext convention: the provider or its
// Device() and Queue() tokens expose HalDevice() any and HalQueue()
// any returning wgpu/hal types.
func SetPresenterDeviceProvider(provider DeviceHandle) error {
	p := ActivePresenter()
	if p == nil {
		return nil
	}
	if dpa, ok := p.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
