// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"log/slog"
	"time"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/display"
	"github.com/gogpu/wgpu/hal"
)

// Display is the rendering backend Run drives. *display.Display
// implements it.
type Display interface {
	Render(frame gx.Frame) error
	Resize(width, height int)
	Destroy()
}

// DisplayFactory creates the Display for a window.
type DisplayFactory func(w display.WindowHandle, cfg Config, log *slog.Logger) (Display, error)

// Option configures Run.
type Option func(*options)

type options struct {
	config  Config
	logger  *slog.Logger
	window  Window
	display DisplayFactory

	now   func() time.Time
	sleep func(time.Duration)
}

func defaultOptions() options {
	return options{
		config:  DefaultConfig(),
		display: newDisplay,
		now:     time.Now,
	}
}

// WithConfig sets the window and loop configuration. Zero Title, Width or
// Height fall back to DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		def := DefaultConfig()
		if cfg.Title == "" {
			cfg.Title = def.Title
		}
		if cfg.Width == 0 {
			cfg.Width = def.Width
		}
		if cfg.Height == 0 {
			cfg.Height = def.Height
		}
		o.config = cfg
	}
}

// WithLogger sets the logger for the loop and the default display.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithWindow runs on an existing window instead of opening one with
// gogpu. Run polls it each frame, creates the display with the
// WithDisplay factory and destroys the window when it returns.
func WithWindow(w Window) Option {
	return func(o *options) {
		o.window = w
	}
}

// WithDisplay replaces the function that creates the Display for a
// WithWindow window.
func WithDisplay(f DisplayFactory) Option {
	return func(o *options) {
		o.display = f
	}
}

// newDisplay opens a display.Display configured from cfg.
func newDisplay(w display.WindowHandle, cfg Config, log *slog.Logger) (Display, error) {
	mode := hal.PresentModeFifo
	if !cfg.VSync {
		mode = hal.PresentModeImmediate
	}
	return display.New(w,
		display.WithLogger(log),
		display.WithPresentMode(mode),
		display.WithLabel(cfg.Title))
}
