// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package display

import (
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Option configures a Display.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	instance    hal.Instance
	backend     gputypes.Backend
	hasBackend  bool
	presentMode hal.PresentMode
	label       string
}

func defaultOptions() options {
	return options{
		presentMode: hal.PresentModeFifo,
		label:       "gx",
	}
}

// WithLogger sets the logger for surface, adapter and upload events.
// Without it the Display logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithInstance uses an existing hal instance instead of creating one. The
// Display does not destroy an injected instance. Tests use it to run on the
// noop backend.
func WithInstance(inst hal.Instance) Option {
	return func(o *options) {
		o.instance = inst
	}
}

// WithBackend requests a specific backend (Vulkan, Metal, DX12, GL) instead
// of the best available one.
func WithBackend(b gputypes.Backend) Option {
	return func(o *options) {
		o.backend = b
		o.hasBackend = true
	}
}

// WithPresentMode requests a present mode. Unsupported modes fall back to
// FIFO, which every surface supports.
func WithPresentMode(m hal.PresentMode) Option {
	return func(o *options) {
		o.presentMode = m
	}
}

// WithLabel sets the prefix of GPU object labels.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}
