// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// FrameBuffers owns the per-frame vertex, index and uniform buffers and the
// group 0 bind group over the uniform buffer.
type FrameBuffers struct {
	device   hal.Device
	pipeline *SpritePipeline

	vertices *Buffer
	indices  *Buffer
	uniforms *Buffer

	uniformGroup hal.BindGroup
	uniformGen   uint64
}

// NewFrameBuffers returns empty frame buffers for p.
func NewFrameBuffers(device hal.Device, queue hal.Queue, p *SpritePipeline) *FrameBuffers {
	return &FrameBuffers{
		device:   device,
		pipeline: p,
		vertices: NewBuffer(device, queue, "frame_vertices", gputypes.BufferUsageVertex),
		indices:  NewBuffer(device, queue, "frame_indices", gputypes.BufferUsageIndex),
		uniforms: NewBuffer(device, queue, "frame_uniforms", gputypes.BufferUsageUniform),
	}
}

// Upload writes the batch into the GPU buffers, one WriteBuffer each, and
// rebuilds the uniform bind group if the uniform buffer was reallocated.
// The previous frame must have finished on the GPU.
func (f *FrameBuffers) Upload(b *Batch) error {
	if b.Len() == 0 {
		return nil
	}
	if err := f.vertices.Write(b.Vertices()); err != nil {
		return err
	}
	if err := f.indices.Write(b.Indices()); err != nil {
		return err
	}
	if err := f.uniforms.Write(b.Uniforms()); err != nil {
		return err
	}
	if f.uniformGroup == nil || f.uniformGen != f.uniforms.Generation() {
		if err := f.rebuildUniformGroup(); err != nil {
			return err
		}
	}
	return nil
}

func (f *FrameBuffers) rebuildUniformGroup() error {
	if f.uniformGroup != nil {
		f.device.DestroyBindGroup(f.uniformGroup)
		f.uniformGroup = nil
	}
	bg, err := f.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "frame_uniform_bind_group",
		Layout: f.pipeline.UniformLayout(),
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: f.uniforms.Raw().NativeHandle(),
					Offset: 0,
					Size:   UniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform bind group: %w", err)
	}
	f.uniformGroup = bg
	f.uniformGen = f.uniforms.Generation()
	return nil
}

// Record encodes every draw of b into rp, in order.
func (f *FrameBuffers) Record(rp hal.RenderPassEncoder, b *Batch) {
	if b.Len() == 0 {
		return
	}
	rp.SetPipeline(f.pipeline.Pipeline())
	for _, d := range b.Draws() {
		rp.SetBindGroup(0, f.uniformGroup, []uint32{d.UniformOffset})
		rp.SetBindGroup(1, d.Texture.BindGroup(), nil)
		rp.SetVertexBuffer(0, f.vertices.Raw(), d.VertexOffset)
		rp.SetIndexBuffer(f.indices.Raw(), gputypes.IndexFormatUint16, d.IndexOffset)
		rp.DrawIndexed(d.IndexCount, 1, 0, 0, 0)
	}
}

// Destroy releases the bind group and buffers.
func (f *FrameBuffers) Destroy() {
	if f == nil {
		return
	}
	if f.uniformGroup != nil {
		f.device.DestroyBindGroup(f.uniformGroup)
		f.uniformGroup = nil
	}
	f.uniforms.Destroy()
	f.indices.Destroy()
	f.vertices.Destroy()
}
