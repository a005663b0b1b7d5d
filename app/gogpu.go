// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nowindow && !nogpu

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gx"
	"github.com/gogpu/gx/display"
	"github.com/gogpu/wgpu"
)

// errNoDevice is reported when gogpu draws before its device exists.
var errNoDevice = errors.New("app: gogpu device unavailable")

// hosted runs a loop inside gogpu. gogpu owns the window and its event
// pump; the display renders into the surface view gogpu acquires for each
// frame, and gogpu presents it.
//
// Events, resizes and OnUpdate run on the main thread. OnDraw and OnClose
// run on the render thread while the main thread waits, so the loop is
// never touched concurrently.
type hosted struct {
	app     *gogpu.App
	loop    *loop
	queue   *eventQueue
	display *display.Display
	opts    options
	log     *slog.Logger

	started bool
	closed  bool
	err     error
	tick    time.Time
}

func runHosted(h Handler, o options, log *slog.Logger) error {
	cfg := gogpu.DefaultConfig().
		WithTitle(o.config.Title).
		WithSize(o.config.Width, o.config.Height).
		WithVSync(o.config.VSync).
		WithContinuousRender(true)
	cfg.Resizable = o.config.Resizable

	a := gogpu.NewApp(cfg)
	s := &hosted{
		app:   a,
		queue: newEventQueue(a.ScaleFactor),
		opts:  o,
		log:   log,
	}
	s.loop = newLoop(h, s.queue, nil, o.config.Width, o.config.Height, o, log)

	s.queue.connect(a.EventSource())
	a.OnResize(func(int, int) { s.queue.resize(a.PhysicalSize()) })
	a.OnUpdate(s.update)
	a.OnDraw(s.draw)
	a.OnClose(s.destroy)

	if err := a.Run(); err != nil {
		return fmt.Errorf("app: open window: %w", err)
	}
	if s.err != nil {
		return s.err
	}
	if s.started && !s.closed {
		// The window system closed the window; it cannot be kept open.
		s.loop.handler.Event(CloseEvent{})
		if !s.loop.handler.Close() {
			log.Warn("close veto ignored; window already closed")
		}
		log.Info("loop stopped", "frames", s.loop.ctx.FrameCount())
	}
	return nil
}

func (s *hosted) update(dt float64) {
	if s.err != nil || s.closed {
		return
	}
	// gogpu ticks as fast as it presents; hold it to the target rate.
	if !s.tick.IsZero() {
		s.loop.pacer.Wait(s.loop.now().Sub(s.tick))
	}
	s.tick = s.loop.now()
	if !s.started {
		s.started = true
		s.loop.ctx.width, s.loop.ctx.height = s.app.PhysicalSize()
		if err := s.loop.init(); err != nil {
			s.fail(err)
			return
		}
	}
	if s.loop.update(dt) {
		s.closed = true
		s.app.Quit()
	}
}

func (s *hosted) draw(dc *gogpu.Context) {
	if s.err != nil || s.closed || !s.started {
		return
	}
	if s.display == nil {
		d, err := s.open(dc)
		if err != nil {
			s.fail(fmt.Errorf("app: create display: %w", err))
			return
		}
		s.display = d
	}

	view := dc.SurfaceView()
	if view == nil {
		return
	}
	w, h := dc.SurfaceSize()
	err := s.loop.render(func(f gx.Frame) error {
		return s.display.RenderTo(f, view.HalTextureView(), int(w), int(h))
	})
	if err != nil {
		s.fail(err)
	}
}

// open creates a display on gogpu's device and queue.
func (s *hosted) open(dc *gogpu.Context) (*display.Display, error) {
	provider := s.app.GPUContextProvider()
	if provider == nil {
		return nil, errNoDevice
	}
	dev, ok := provider.Device().(*wgpu.Device)
	if !ok || dev == nil {
		return nil, errNoDevice
	}
	return display.NewHosted(dev.HalDevice(), dev.HalQueue(), dc.Format(),
		display.WithLogger(s.log),
		display.WithLabel(s.opts.config.Title))
}

func (s *hosted) destroy() {
	if s.display != nil {
		s.display.Destroy()
		s.display = nil
	}
}

func (s *hosted) fail(err error) {
	s.err = err
	s.app.Quit()
}
