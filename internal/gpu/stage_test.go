// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gx"
)

func TestFrameBuffersUploadAndRecord(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewSpritePipeline(device, gputypes.TextureFormatBGRA8UnormSrgb)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Destroy()

	tex, err := NewTexture(device, queue, p, "white", 1, 1, []byte{255, 255, 255, 255})
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Destroy(device)

	rq := &recordingQueue{Queue: queue}
	fb := NewFrameBuffers(device, rq, p)
	defer fb.Destroy()

	circle, err := gx.Circle(1, 8)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBatch()
	b.Add(gx.Triangle(), gx.IdentityMat4(), gx.None, tex)
	b.Add(circle, gx.IdentityMat4(), gx.None, tex)
	b.Add(gx.Triangle(), gx.IdentityMat4(), gx.None, tex)

	if err := fb.Upload(b); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(rq.bufferWrites) != 3 {
		t.Errorf("WriteBuffer called %d times, want 3", len(rq.bufferWrites))
	}

	rp := newNoopPass(t, device)
	fb.Record(rp, b)

	if rp.pipelines != 1 {
		t.Errorf("SetPipeline called %d times, want 1", rp.pipelines)
	}
	want := []drawCall{
		{indexCount: 3, vertexOffset: 0, indexOffset: 0, dynOffset: 0},
		{indexCount: 24, vertexOffset: 3 * VertexStride, indexOffset: 8, dynOffset: UniformSlotStride},
		{indexCount: 3, vertexOffset: 0, indexOffset: 0, dynOffset: 2 * UniformSlotStride},
	}
	if len(rp.draws) != len(want) {
		t.Fatalf("got %d draws, want %d", len(rp.draws), len(want))
	}
	for i := range want {
		if rp.draws[i] != want[i] {
			t.Errorf("draw %d = %+v, want %+v", i, rp.draws[i], want[i])
		}
	}
}

func TestFrameBuffersEmptyBatch(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewSpritePipeline(device, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Destroy()

	rq := &recordingQueue{Queue: queue}
	fb := NewFrameBuffers(device, rq, p)
	defer fb.Destroy()

	b := NewBatch()
	if err := fb.Upload(b); err != nil {
		t.Fatal(err)
	}
	if len(rq.bufferWrites) != 0 {
		t.Errorf("empty batch wrote %d buffers", len(rq.bufferWrites))
	}
	rp := newNoopPass(t, device)
	fb.Record(rp, b)
	if rp.pipelines != 0 || len(rp.draws) != 0 {
		t.Error("empty batch recorded draws")
	}
}

func TestFrameBuffersRebuildsUniformGroupOnGrowth(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewSpritePipeline(device, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Destroy()

	fb := NewFrameBuffers(device, queue, p)
	defer fb.Destroy()

	b := NewBatch()
	b.Add(gx.Triangle(), gx.IdentityMat4(), gx.None, nil)
	if err := fb.Upload(b); err != nil {
		t.Fatal(err)
	}
	gen := fb.uniformGen

	b.Reset()
	for range 64 {
		b.Add(gx.Triangle(), gx.IdentityMat4(), gx.None, nil)
	}
	if err := fb.Upload(b); err != nil {
		t.Fatal(err)
	}
	if fb.uniformGen == gen {
		t.Error("uniform bind group not rebuilt after buffer growth")
	}
	if fb.uniformGen != fb.uniforms.Generation() {
		t.Errorf("bind group generation %d, buffer generation %d", fb.uniformGen, fb.uniforms.Generation())
	}
}
