//go:build !nogpu

// Package gpu registers the wgpu presenter for GPU presentation of
// finished frames.
//
// Import this package to have each rendered frame uploaded to a GPU
// texture and blitted into a present target after CPU compositing. The
// presenter compiles the blit shader through naga at startup;
// compilation failure is fatal and leaves the presenter unregistered.
//
// If GPU initialization fails (no Vulkan available), the registration
// is silently skipped and frames stay readable through the renderer's
// CPU target.
//
// Usage:
//
//	import _ "github.com/gogpu/crt/gpu" // enable GPU presentation
package gpu

import (
	"github.com/gogpu/crt"
	gpuimpl "github.com/gogpu/crt/internal/gpu"
	"github.com/gogpu/crt/render"
)

func init() {
	if err := render.RegisterPresenter(gpuimpl.NewPresenter()); err != nil {
		crt.Logger().Warn("GPU presenter not available", "err", err)
	}
}

// SetDeviceProvider configures the presenter to use a shared GPU device
// from an external provider (e.g., a gogpu.App). This avoids creating a
// separate GPU instance and enables efficient device sharing.
//
// The provider or its Device() and Queue() tokens must expose HAL
// access through HalDevice() any and HalQueue() any.
//
// Call this before rendering, typically right after the host acquires
// its device.
func SetDeviceProvider(provider render.DeviceHandle) error {
	return render.SetPresenterDeviceProvider(provider)
}
