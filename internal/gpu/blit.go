package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// blitFenceTimeout bounds the wait for the present pass to finish.
const blitFenceTimeout = 5 * time.Second

// BlitPipeline draws the uploaded frame texture into a render
// attachment with a single fullscreen triangle. It is the pass that
// turns the CPU-composed frame into a presentable GPU target.
type BlitPipeline struct {
	device hal.Device
	queue  hal.Queue

	texLayout  hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewBlitPipeline builds the blit render pipeline for the given target
// format from an already compiled shader module.
func NewBlitPipeline(d *Device, module hal.ShaderModule, format gputypes.TextureFormat) (*BlitPipeline, error) {
	p := &BlitPipeline{device: d.device, queue: d.queue}

	texLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "blit_tex_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create blit tex layout: %w", err)
	}
	p.texLayout = texLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "blit_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.texLayout},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("gpu: create blit pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "blit_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("gpu: create blit pipeline: %w", err)
	}
	p.pipeline = pipeline

	return p, nil
}

// Blit records and submits a render pass drawing src into dst, then
// waits for the GPU to finish. dst must have been created with render
// attachment usage and match the source dimensions.
func (p *BlitPipeline) Blit(src, dst *Texture) error {
	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "blit_bind",
		Layout: p.texLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: src.view.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create blit bind group: %w", err)
	}
	defer p.device.DestroyBindGroup(bindGroup)

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "blit_encoder",
	})
	if err != nil {
		return fmt.Errorf("gpu: create blit encoder: %w", err)
	}
	if err := encoder.BeginEncoding("blit"); err != nil {
		return fmt.Errorf("gpu: begin blit encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "blit_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       dst.view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end blit encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create blit fence: %w", err)
	}
	defer p.device.DestroyFence(fence)

	if err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit blit: %w", err)
	}
	ok, err := p.device.Wait(fence, 1, blitFenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("gpu: wait for blit: ok=%v err=%w", ok, err)
	}
	return nil
}

// Destroy releases the pipeline resources. Safe to call twice.
func (p *BlitPipeline) Destroy() {
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.texLayout != nil {
		p.device.DestroyBindGroupLayout(p.texLayout)
		p.texLayout = nil
	}
}
