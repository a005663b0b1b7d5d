// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package display

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gx/internal/gpu"
	"github.com/gogpu/gx/internal/logging"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/allbackends" // register native backends
)

// Display renders gx frames to a window surface it owns, or, when made
// by NewHosted, into texture views handed to RenderTo. It is not safe for
// concurrent use; call it from the thread driving the frame loop.
type Display struct {
	log  *slog.Logger
	opts options

	instance     hal.Instance
	ownsInstance bool
	surface      hal.Surface
	info         gputypes.AdapterInfo
	device       hal.Device
	queue        hal.Queue
	ownsDevice   bool

	config      hal.SurfaceConfiguration
	configured  bool
	reconfigure bool
	width       int
	height      int

	pipeline *gpu.SpritePipeline
	buffers  *gpu.FrameBuffers
	batch    *gpu.Batch
	textures *textureCache

	frames    atomic.Uint64
	skipped   atomic.Uint64
	lastDraws atomic.Uint64

	destroyed bool
}

// New creates a Display for window: it opens a device able to present to
// the window's surface, configures the surface at the window's pixel size
// and builds the sprite pipeline. Every failure is returned wrapped; none
// of them are recoverable.
func New(window WindowHandle, opts ...Option) (*Display, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Display{
		log:  logging.OrNop(o.logger),
		opts: o,
	}
	if err := d.init(window); err != nil {
		d.Destroy()
		return nil, err
	}
	return d, nil
}

func (d *Display) init(window WindowHandle) error {
	if err := d.createInstance(); err != nil {
		return err
	}

	displayHandle, windowHandle := window.NativeHandles()
	surface, err := d.instance.CreateSurface(displayHandle, windowHandle)
	if err != nil {
		return fmt.Errorf("display: create surface: %w", err)
	}
	d.surface = surface

	adapters := d.instance.EnumerateAdapters(surface)
	var caps *hal.SurfaceCapabilities
	var chosen *hal.ExposedAdapter
	for i := range adapters {
		c := adapters[i].Adapter.SurfaceCapabilities(surface)
		if c != nil && len(c.Formats) > 0 {
			chosen, caps = &adapters[i], c
			break
		}
	}
	if chosen == nil {
		return ErrNoAdapter
	}
	d.info = chosen.Info

	openDev, err := chosen.Adapter.Open(0, chosen.Capabilities.Limits)
	if err != nil {
		return fmt.Errorf("display: open device on %q: %w", chosen.Info.Name, err)
	}
	d.device = openDev.Device
	d.queue = openDev.Queue
	d.ownsDevice = true
	d.log.Info("adapter selected",
		"name", d.info.Name,
		"vendor", d.info.Vendor,
		"backend", d.info.Backend.String())

	d.config, err = surfaceConfig(caps, d.opts.presentMode)
	if err != nil {
		return err
	}
	w, h := window.Size()
	scale := window.ScaleFactor()
	d.width = int(float64(w) * scale)
	d.height = int(float64(h) * scale)
	if err := d.configure(); err != nil {
		return err
	}

	return d.build()
}

// build creates the pipeline and per-frame state for the chosen format.
func (d *Display) build() error {
	var err error
	d.pipeline, err = gpu.NewSpritePipeline(d.device, d.config.Format)
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	d.buffers = gpu.NewFrameBuffers(d.device, d.queue, d.pipeline)
	d.batch = gpu.NewBatch()
	d.textures = newTextureCache(d.device, d.queue, d.pipeline, d.log)
	return nil
}

// NewHosted creates a Display on a device owned by a host renderer, such
// as a window framework that manages its own surface. Frames are drawn
// with RenderTo into views in format. The Display never destroys the
// device or queue.
func NewHosted(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, opts ...Option) (*Display, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Display{
		log:    logging.OrNop(o.logger),
		opts:   o,
		device: device,
		queue:  queue,
	}
	d.config.Format = format
	if err := d.build(); err != nil {
		d.Destroy()
		return nil, err
	}
	d.log.Info("hosted display created", "format", format.String())
	return d, nil
}

func (d *Display) createInstance() error {
	if d.opts.instance != nil {
		d.instance = d.opts.instance
		return nil
	}

	var backend hal.Backend
	var err error
	if d.opts.hasBackend {
		b, ok := hal.GetBackend(d.opts.backend)
		if !ok {
			return fmt.Errorf("display: backend %s: %w", d.opts.backend, hal.ErrBackendNotFound)
		}
		backend = b
	} else {
		backend, err = hal.SelectBestBackend()
		if err != nil {
			return fmt.Errorf("display: select backend: %w", err)
		}
	}

	inst, err := backend.CreateInstance(&hal.InstanceDescriptor{Backends: gputypes.BackendsAll})
	if err != nil {
		return fmt.Errorf("display: create %s instance: %w", backend.Variant(), err)
	}
	d.instance = inst
	d.ownsInstance = true
	return nil
}

// Size returns the surface size in pixels.
func (d *Display) Size() (width, height int) {
	return d.width, d.height
}

// SurfaceFormat returns the format frames are rendered in.
func (d *Display) SurfaceFormat() gputypes.TextureFormat {
	return d.config.Format
}

// AdapterInfo describes the GPU the Display runs on.
func (d *Display) AdapterInfo() gputypes.AdapterInfo {
	return d.info
}

// Stats is a snapshot of Display counters.
type Stats struct {
	// Frames is the number of frames presented.
	Frames uint64
	// Skipped is the number of frames dropped because the surface was
	// unavailable or zero-sized.
	Skipped uint64
	// Draws is the number of draws in the last presented frame.
	Draws uint64
	// Textures is the number of cached textures.
	Textures int
	// TextureHits and TextureMisses count cache lookups.
	TextureHits   uint64
	TextureMisses uint64
	// Uploads counts texture uploads, including re-uploads.
	Uploads uint64
}

// Stats returns the current counters.
func (d *Display) Stats() Stats {
	s := Stats{
		Frames:  d.frames.Load(),
		Skipped: d.skipped.Load(),
		Draws:   d.lastDraws.Load(),
	}
	if d.textures != nil {
		cs := d.textures.stats()
		s.Textures = cs.Len
		s.TextureHits = cs.Hits
		s.TextureMisses = cs.Misses
		s.Uploads = cs.Creates + d.textures.reuploads.Load()
	}
	return s
}

// Reupload rewrites every cached texture from the pixels kept on the CPU.
// Call it after the device contents were lost.
func (d *Display) Reupload() error {
	if d.destroyed {
		return ErrDestroyed
	}
	return d.textures.reupload()
}

// Destroy waits for the GPU and releases everything in reverse creation
// order. It is safe to call more than once.
func (d *Display) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true

	if d.device != nil {
		if err := d.device.WaitIdle(); err != nil {
			d.log.Warn("wait idle before destroy", "err", err)
		}
	}
	if d.textures != nil {
		d.textures.destroy()
		d.textures = nil
	}
	if d.buffers != nil {
		d.buffers.Destroy()
		d.buffers = nil
	}
	if d.pipeline != nil {
		d.pipeline.Destroy()
		d.pipeline = nil
	}
	if d.surface != nil {
		if d.configured && d.device != nil {
			d.surface.Unconfigure(d.device)
		}
		d.surface.Destroy()
		d.surface = nil
	}
	if d.device != nil && d.ownsDevice {
		d.device.Destroy()
	}
	d.device = nil
	d.queue = nil
	if d.instance != nil && d.ownsInstance {
		d.instance.Destroy()
	}
	d.instance = nil
}
