package render

import (
	"github.com/gogpu/gpucontext"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host application (e.g. a gogpu.App) implements DeviceHandle and
// passes it in, letting the presenter share the host's GPU device and
// queue instead of creating its own. The core never creates a device on
// its own when a handle is supplied.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, keeping full
// compatibility with the gpucontext ecosystem under a local name.
type DeviceHandle = gpucontext.DeviceProvider
