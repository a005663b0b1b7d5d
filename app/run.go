// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/internal/logging"
)

// ErrNilHandler is returned by Run when h is nil.
var ErrNilHandler = errors.New("app: nil handler")

// Run opens the window and display, calls h.Init and runs the frame loop
// until h agrees to close. It returns nil on a normal close.
//
// Without WithWindow, Run hands the window and event loop to gogpu and
// renders into its surface view. With WithWindow it polls that
// window and creates the display with the WithDisplay factory.
//
// The window, display and Init failures are returned wrapped. A render
// error other than a skipped frame ends the loop and is returned.
//
// On desktop platforms Run must be called from the main goroutine.
func Run(h Handler, opts ...Option) error {
	if h == nil {
		return ErrNilHandler
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return err
	}
	log := logging.OrNop(o.logger)

	if o.window == nil {
		return runHosted(h, o, log)
	}
	win := o.window
	defer win.Destroy()

	disp, err := o.display(win, o.config, log)
	if err != nil {
		return fmt.Errorf("app: create display: %w", err)
	}
	defer disp.Destroy()

	w, hgt := pixelSize(win)
	l := newLoop(h, win, disp, w, hgt, o, log)
	return l.run()
}

// poller is the event source of a loop.
type poller interface {
	Poll() []Event
}

// loop is the state of one Run.
type loop struct {
	handler Handler
	events  poller
	display Display
	ctx     *Context
	pacer   Pacer
	log     *slog.Logger
	now     func() time.Time
}

func newLoop(h Handler, events poller, disp Display, w, hgt int, o options, log *slog.Logger) *loop {
	r := gx.NewRenderer()
	r.SetBackground(o.config.BackgroundColor())

	pacer := NewPacer(o.config.FrameRate())
	pacer.sleep = o.sleep

	return &loop{
		handler: h,
		events:  events,
		display: disp,
		ctx: &Context{
			renderer: r,
			config:   o.config,
			log:      log,
			width:    w,
			height:   hgt,
		},
		pacer: pacer,
		log:   log,
		now:   o.now,
	}
}

func (l *loop) run() error {
	if err := l.init(); err != nil {
		return err
	}

	last := l.now()
	for {
		start := l.now()
		dt := start.Sub(last).Seconds()
		last = start
		if l.update(dt) {
			return nil
		}
		if err := l.render(l.display.Render); err != nil {
			return err
		}
		l.pacer.Wait(l.now().Sub(start))
	}
}

// init calls Handler.Init.
func (l *loop) init() error {
	if err := l.handler.Init(l.ctx); err != nil {
		return fmt.Errorf("app: init: %w", err)
	}
	l.log.Info("loop started",
		"width", l.ctx.width,
		"height", l.ctx.height,
		"target", l.pacer.Target)
	return nil
}

// update forwards pending events and advances the handler by dt. It
// reports true, without calling Update, when the handler agreed to close.
func (l *loop) update(dt float64) bool {
	if l.pollEvents() && l.closeRequested() {
		l.log.Info("loop stopped", "frames", l.ctx.FrameCount())
		return true
	}
	l.handler.Update(dt)
	return false
}

// pollEvents forwards the pending events to the handler, applies the
// last resize to the display and reports whether a close was requested.
func (l *loop) pollEvents() bool {
	closing := false
	resized := false
	for _, ev := range l.events.Poll() {
		switch e := ev.(type) {
		case ResizeEvent:
			l.ctx.width, l.ctx.height = e.Width, e.Height
			resized = true
		case CloseEvent:
			closing = true
		}
		l.handler.Event(ev)
	}
	if resized && l.display != nil {
		l.display.Resize(l.ctx.width, l.ctx.height)
		l.log.Debug("window resized", "width", l.ctx.width, "height", l.ctx.height)
	}
	if l.ctx.quit {
		l.ctx.quit = false
		closing = true
	}
	return closing
}

// closeRequested asks the handler whether to close.
func (l *loop) closeRequested() bool {
	if l.handler.Close() {
		return true
	}
	l.log.Debug("close vetoed")
	return false
}

// render records the frame through Handler.Draw and hands it to draw.
func (l *loop) render(draw func(gx.Frame) error) error {
	r := l.ctx.renderer
	l.handler.Draw(r)
	if err := draw(r.Frame()); err != nil {
		return fmt.Errorf("app: render frame %d: %w", r.FrameCount(), err)
	}
	r.EndFrame()
	return nil
}
