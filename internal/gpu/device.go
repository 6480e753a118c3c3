// Package gpu is the wgpu resource layer for GPU presentation: device
// and queue acquisition, texture wrappers with pixel upload, and the
// blit pass that draws each uploaded frame into the present target
// with a shader compiled through naga at startup.
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/crt"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device acquisition errors.
var (
	// ErrNoBackend is returned when no supported GPU backend exists on
	// this system.
	ErrNoBackend = errors.New("gpu: no supported backend available")

	// ErrNoAdapter is returned when the backend exposes no adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")
)

// Device wraps a HAL device/queue pair, either opened standalone or
// borrowed from a host application.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// external is true when the device belongs to the host; Close must
	// not destroy it.
	external bool

	adapterName string
}

// Open creates a standalone Vulkan device. This is the fallback path
// when the host application does not share its own device through
// FromProvider.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}

	d := &Device{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
	}
	crt.Logger().Info("gpu: device opened", "adapter", d.adapterName)
	return d, nil
}

// FromProvider wraps a shared device from an external
// gpucontext.DeviceProvider. HAL access follows the gpucontext
// convention: either the provider itself exposes HalDevice() any and
// HalQueue() any, or its Device() and Queue() tokens do.
func FromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, errors.New("gpu: nil device provider")
	}

	var rawDevice, rawQueue any
	if hp, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	}); ok {
		rawDevice = hp.HalDevice()
		rawQueue = hp.HalQueue()
	} else {
		da, ok := provider.Device().(interface{ HalDevice() any })
		if !ok {
			return nil, fmt.Errorf("gpu: provider does not expose HAL types")
		}
		qa, ok := provider.Queue().(interface{ HalQueue() any })
		if !ok {
			return nil, fmt.Errorf("gpu: provider does not expose HAL types")
		}
		rawDevice = da.HalDevice()
		rawQueue = qa.HalQueue()
	}

	device, ok := rawDevice.(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := rawQueue.(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	name := provider.AdapterInfo().Name
	crt.Logger().Info("gpu: using shared host device", "adapter", name)
	return &Device{device: device, queue: queue, external: true, adapterName: name}, nil
}

// Device returns the HAL device.
func (d *Device) Device() hal.Device {
	return d.device
}

// Queue returns the HAL queue.
func (d *Device) Queue() hal.Queue {
	return d.queue
}

// AdapterName returns the selected adapter's name, empty for shared
// devices.
func (d *Device) AdapterName() string {
	return d.adapterName
}

// Close destroys the device if this Device owns it. Shared host devices
// are left alone.
func (d *Device) Close() {
	if d.external || d.device == nil {
		return
	}
	d.device.Destroy()
	d.device = nil
	d.queue = nil
}
