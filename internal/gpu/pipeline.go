// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Vertex layout: position float32x3 at 0, uv float32x2 at 12.
const (
	VertexStride   = 20
	positionOffset = 0
	uvOffset       = 12
)

// Uniform layout: column-major mat4x4 followed by a vec4 color. Each draw
// owns one slot; slots are aligned to the dynamic offset alignment.
const (
	UniformSize       = 80
	UniformSlotStride = 256
)

// ErrNilDevice is returned when a constructor is given a nil device.
var ErrNilDevice = errors.New("gpu: device is nil")

// SpritePipeline is the render pipeline every draw command goes through,
// together with the bind group layouts and the shared sampler.
type SpritePipeline struct {
	device hal.Device
	format gputypes.TextureFormat

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	textureLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	sampler       hal.Sampler
}

// NewSpritePipeline compiles the sprite shader and builds a pipeline that
// renders into targets of the given format.
func NewSpritePipeline(device hal.Device, format gputypes.TextureFormat) (*SpritePipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	p := &SpritePipeline{device: device, format: format}
	if err := p.create(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *SpritePipeline) create() error {
	shader, err := createShaderModule(p.device, "sprite_shader", spriteShaderSource)
	if err != nil {
		return err
	}
	p.shader = shader

	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "sprite_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:             gputypes.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   UniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create sprite uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	textureLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "sprite_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create sprite texture layout: %w", err)
	}
	p.textureLayout = textureLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "sprite_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create sprite pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	blend := gputypes.BlendStateAlpha()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "sprite_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create sprite pipeline: %w", err)
	}
	p.pipeline = pipeline

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "sprite_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		return fmt.Errorf("create sprite sampler: %w", err)
	}
	p.sampler = sampler

	return nil
}

// VertexLayout describes the gx.Vertex buffer layout.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: positionOffset, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: uvOffset, ShaderLocation: 1},
			},
		},
	}
}

// Pipeline returns the render pipeline.
func (p *SpritePipeline) Pipeline() hal.RenderPipeline { return p.pipeline }

// UniformLayout returns the group 0 layout.
func (p *SpritePipeline) UniformLayout() hal.BindGroupLayout { return p.uniformLayout }

// TextureLayout returns the group 1 layout.
func (p *SpritePipeline) TextureLayout() hal.BindGroupLayout { return p.textureLayout }

// Sampler returns the shared sampler bound next to every texture.
func (p *SpritePipeline) Sampler() hal.Sampler { return p.sampler }

// Format returns the color target format the pipeline was built for.
func (p *SpritePipeline) Format() gputypes.TextureFormat { return p.format }

// Destroy releases all pipeline resources in reverse creation order.
// It is safe to call more than once.
func (p *SpritePipeline) Destroy() {
	if p == nil || p.device == nil {
		return
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.textureLayout != nil {
		p.device.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
