// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nogpu

package display

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/gx"
	"github.com/gogpu/wgpu/hal"
)

// Display is unavailable in nogpu builds; New and NewHosted always fail.
type Display struct{}

// Stats is empty in nogpu builds.
type Stats struct{}

func New(WindowHandle, ...Option) (*Display, error) { return nil, ErrNoGPU }

func NewHosted(hal.Device, hal.Queue, gputypes.TextureFormat, ...Option) (*Display, error) {
	return nil, ErrNoGPU
}

func (*Display) Render(gx.Frame) error                              { return ErrNoGPU }
func (*Display) RenderTo(gx.Frame, hal.TextureView, int, int) error { return ErrNoGPU }
func (*Display) Resize(int, int)                                    {}
func (*Display) Size() (int, int)                                   { return 0, 0 }
func (*Display) Stats() Stats                                       { return Stats{} }
func (*Display) Reupload() error                                    { return ErrNoGPU }
func (*Display) Destroy()                                           {}
