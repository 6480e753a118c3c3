package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL source for the present blit, compiled through naga at
// startup. Compilation failure is fatal: there is no fallback
// presentation path. The effect chain itself runs on the CPU; the GPU
// side is the frame upload plus this copy into the present target.

//go:embed shaders/blit.wgsl
var blitShaderSource string

// ShaderModules holds the compiled shader modules.
type ShaderModules struct {
	// Blit copies the uploaded frame into the present target.
	Blit hal.ShaderModule
}

// CompileShaders compiles the WGSL sources to SPIR-V and creates the
// shader modules on the device. Any failure is returned as-is; callers
// treat it as fatal at startup.
func CompileShaders(d *Device) (*ShaderModules, error) {
	blit, err := compileModule(d, "blit", blitShaderSource)
	if err != nil {
		return nil, err
	}
	return &ShaderModules{Blit: blit}, nil
}

// compileModule compiles one WGSL source to SPIR-V and wraps it in a
// HAL shader module.
func compileModule(d *Device, name, source string) (hal.ShaderModule, error) {
	if source == "" {
		return nil, fmt.Errorf("gpu: shader %q source is empty", name)
	}
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile shader %q: %w", name, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("gpu: shader %q: SPIR-V length %d not word-aligned",
			name, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: name,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create shader module %q: %w", name, err)
	}
	return module, nil
}

// Destroy releases all shader modules.
func (m *ShaderModules) Destroy(d *Device) {
	if m.Blit != nil {
		d.device.DestroyShaderModule(m.Blit)
		m.Blit = nil
	}
}

// ValidateShaderSources checks that every embedded source is present.
// It exists so tests can catch a broken embed without a GPU.
func ValidateShaderSources() error {
	if blitShaderSource == "" {
		return errors.New("gpu: shader blit source is empty")
	}
	return nil
}
