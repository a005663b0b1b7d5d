// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package display renders gx frames to a window surface through the
// gogpu/wgpu hal.
//
// A Display owns the GPU instance, surface, device, queue, the sprite
// pipeline and a texture cache keyed by gx.Image keys. Each call to Render
// turns one gx.Frame into a single render pass:
//
//	d, err := display.New(window, display.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer d.Destroy()
//
//	for running {
//		// record into r ...
//		if err := d.Render(r.Frame()); err != nil {
//			return err // device lost or a programming error
//		}
//		r.EndFrame()
//	}
//
// Transient surface failures (lost, outdated, not ready, timeout) skip the
// frame and schedule a reconfigure; Render returns nil for them. A lost
// device is fatal and reported as an error wrapping hal.ErrDeviceLost.
//
// Native backends are registered by importing hal/allbackends, so a Display
// picks Vulkan, Metal, DX12 or GLES at runtime without cgo. Building with
// -tags nogpu drops the backends; New and NewHosted then return ErrNoGPU.
package display
