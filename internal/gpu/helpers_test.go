// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a device on the noop backend.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// recordingQueue counts uploads passing through a real queue.
type recordingQueue struct {
	hal.Queue
	bufferWrites  []int
	textureWrites []hal.ImageDataLayout
}

func (q *recordingQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	q.bufferWrites = append(q.bufferWrites, len(data))
	return q.Queue.WriteBuffer(buf, offset, data)
}

func (q *recordingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.textureWrites = append(q.textureWrites, *layout)
	return q.Queue.WriteTexture(dst, data, layout, size)
}

type drawCall struct {
	indexCount   uint32
	vertexOffset uint64
	indexOffset  uint64
	dynOffset    uint32
}

// recordingPass captures the draw stream of a render pass.
type recordingPass struct {
	hal.RenderPassEncoder
	pipelines    int
	vertexOffset uint64
	indexOffset  uint64
	dynOffset    uint32
	draws        []drawCall
}

func (p *recordingPass) SetPipeline(pl hal.RenderPipeline) {
	p.pipelines++
	p.RenderPassEncoder.SetPipeline(pl)
}

func (p *recordingPass) SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32) {
	if index == 0 && len(offsets) == 1 {
		p.dynOffset = offsets[0]
	}
	p.RenderPassEncoder.SetBindGroup(index, group, offsets)
}

func (p *recordingPass) SetVertexBuffer(slot uint32, buf hal.Buffer, offset uint64) {
	p.vertexOffset = offset
	p.RenderPassEncoder.SetVertexBuffer(slot, buf, offset)
}

func (p *recordingPass) SetIndexBuffer(buf hal.Buffer, format gputypes.IndexFormat, offset uint64) {
	p.indexOffset = offset
	p.RenderPassEncoder.SetIndexBuffer(buf, format, offset)
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.draws = append(p.draws, drawCall{
		indexCount:   indexCount,
		vertexOffset: p.vertexOffset,
		indexOffset:  p.indexOffset,
		dynOffset:    p.dynOffset,
	})
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func newNoopPass(t *testing.T, device hal.Device) *recordingPass {
	t.Helper()
	enc, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "test"})
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	if err := enc.BeginEncoding("test"); err != nil {
		t.Fatalf("BeginEncoding: %v", err)
	}
	return &recordingPass{RenderPassEncoder: enc.BeginRenderPass(&hal.RenderPassDescriptor{})}
}
