// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package display

import (
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// testWindow is a headless WindowHandle.
type testWindow struct {
	gpucontext.NullWindowProvider
}

func (testWindow) NativeHandles() (uintptr, uintptr) { return 0, 0 }

// fakeInstance wraps the noop instance so tests can observe the surface,
// device and queue a Display creates.
type fakeInstance struct {
	hal.Instance
	noAdapters bool

	surface *fakeSurface
	device  *fakeDevice
	queue   *fakeQueue
}

func (i *fakeInstance) CreateSurface(display, window uintptr) (hal.Surface, error) {
	s, err := i.Instance.CreateSurface(display, window)
	if err != nil {
		return nil, err
	}
	i.surface = &fakeSurface{Surface: s}
	return i.surface, nil
}

func (i *fakeInstance) EnumerateAdapters(hint hal.Surface) []hal.ExposedAdapter {
	if i.noAdapters {
		return nil
	}
	adapters := i.Instance.EnumerateAdapters(nil)
	for k := range adapters {
		adapters[k].Adapter = &fakeAdapter{Adapter: adapters[k].Adapter, inst: i}
	}
	return adapters
}

type fakeAdapter struct {
	hal.Adapter
	inst *fakeInstance
}

func (a *fakeAdapter) Open(features gputypes.Features, limits gputypes.Limits) (hal.OpenDevice, error) {
	od, err := a.Adapter.Open(features, limits)
	if err != nil {
		return od, err
	}
	a.inst.device = &fakeDevice{Device: od.Device}
	a.inst.queue = &fakeQueue{Queue: od.Queue}
	return hal.OpenDevice{Device: a.inst.device, Queue: a.inst.queue}, nil
}

// fakeSurface records configurations and can fail acquires on demand.
type fakeSurface struct {
	hal.Surface
	configs     []hal.SurfaceConfiguration
	acquireErrs []error
	acquires    int
	discards    int
}

func (s *fakeSurface) Configure(device hal.Device, config *hal.SurfaceConfiguration) error {
	s.configs = append(s.configs, *config)
	return s.Surface.Configure(device, config)
}

func (s *fakeSurface) AcquireTexture(fence hal.Fence) (*hal.AcquiredSurfaceTexture, error) {
	s.acquires++
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return s.Surface.AcquireTexture(fence)
}

func (s *fakeSurface) DiscardTexture(tex hal.SurfaceTexture) {
	s.discards++
	s.Surface.DiscardTexture(tex)
}

func (s *fakeSurface) lastConfig() hal.SurfaceConfiguration {
	return s.configs[len(s.configs)-1]
}

// fakeDevice hands out recording command encoders.
type fakeDevice struct {
	hal.Device
	passes []*recordingPass
}

func (d *fakeDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, dev: d}, nil
}

func (d *fakeDevice) lastPass() *recordingPass {
	return d.passes[len(d.passes)-1]
}

type recordingEncoder struct {
	hal.CommandEncoder
	dev *fakeDevice
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	p := &recordingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc)}
	if len(desc.ColorAttachments) > 0 {
		p.clear = desc.ColorAttachments[0].ClearValue
		p.loadOp = desc.ColorAttachments[0].LoadOp
	}
	e.dev.passes = append(e.dev.passes, p)
	return p
}

type recordingPass struct {
	hal.RenderPassEncoder
	clear   gputypes.Color
	loadOp  gputypes.LoadOp
	indices []uint32
	ended   bool
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.indices = append(p.indices, indexCount)
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *recordingPass) End() {
	p.ended = true
	p.RenderPassEncoder.End()
}

// fakeQueue counts uploads, submits and presents.
type fakeQueue struct {
	hal.Queue
	textureWrites int
	submits       int
	presents      int
	presentErr    error
}

func (q *fakeQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.textureWrites++
	return q.Queue.WriteTexture(dst, data, layout, size)
}

func (q *fakeQueue) Submit(cmds []hal.CommandBuffer) (uint64, error) {
	q.submits++
	return q.Queue.Submit(cmds)
}

func (q *fakeQueue) Present(surface hal.Surface, tex hal.SurfaceTexture, damage []image.Rectangle) error {
	q.presents++
	if q.presentErr != nil {
		err := q.presentErr
		q.presentErr = nil
		return err
	}
	return q.Queue.Present(surface, tex, damage)
}

// newTestDisplay opens a Display on the noop backend.
func newTestDisplay(t *testing.T, w, h int, opts ...Option) (*Display, *fakeInstance) {
	t.Helper()
	base, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	inst := &fakeInstance{Instance: base}
	window := testWindow{gpucontext.NullWindowProvider{W: w, H: h}}

	d, err := New(window, append([]Option{WithInstance(inst)}, opts...)...)
	if err != nil {
		base.Destroy()
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		d.Destroy()
		base.Destroy()
	})
	return d, inst
}

// newHostedTestDisplay opens a hosted Display on a noop device it does not
// own, plus a BGRA8 render target view.
func newHostedTestDisplay(t *testing.T) (*Display, *fakeDevice, *fakeQueue, hal.TextureView) {
	t.Helper()
	base, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	od, err := base.EnumerateAdapters(nil)[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		base.Destroy()
		t.Fatalf("Open: %v", err)
	}
	dev := &fakeDevice{Device: od.Device}
	queue := &fakeQueue{Queue: od.Queue}

	format := gputypes.TextureFormatBGRA8Unorm
	tex, err := od.Device.CreateTexture(&hal.TextureDescriptor{
		Label:         "target",
		Size:          hal.Extent3D{Width: 64, Height: 32, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	view, err := od.Device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "target_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateTextureView: %v", err)
	}

	d, err := NewHosted(dev, queue, format)
	if err != nil {
		t.Fatalf("NewHosted: %v", err)
	}
	t.Cleanup(func() {
		d.Destroy()
		od.Device.DestroyTextureView(view)
		od.Device.DestroyTexture(tex)
		od.Device.Destroy()
		base.Destroy()
	})
	return d, dev, queue, view
}
