// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package display

import (
	"errors"

	"github.com/gogpu/gpucontext"
)

var (
	// ErrNoAdapter is returned when no GPU adapter can drive the surface.
	ErrNoAdapter = errors.New("display: no compatible GPU adapter")

	// ErrNoSurfaceFormat is returned when the surface reports no formats.
	ErrNoSurfaceFormat = errors.New("display: surface reports no formats")

	// ErrDestroyed is returned by Render after Destroy.
	ErrDestroyed = errors.New("display: destroyed")

	// ErrUnknownImage is returned when a command refers to an image the
	// frame's pool does not hold.
	ErrUnknownImage = errors.New("display: command image not in frame pool")

	// ErrNilMesh is returned when a command has no mesh.
	ErrNilMesh = errors.New("display: command has no mesh")

	// ErrNoSurface is returned by Render on a hosted Display.
	ErrNoSurface = errors.New("display: no surface; use RenderTo")

	// ErrNilDevice is returned by NewHosted without a device or queue.
	ErrNilDevice = errors.New("display: nil device or queue")

	// ErrNoGPU is returned by New and NewHosted in nogpu builds.
	ErrNoGPU = errors.New("display: built without GPU support")
)

// WindowHandle is what a Display needs from a window: its size and scale,
// plus the native handles the surface is created from.
type WindowHandle interface {
	gpucontext.WindowProvider

	// NativeHandles returns the platform display connection (X11 Display*,
	// Wayland wl_display*, zero elsewhere) and the window handle (X11
	// Window, HWND, NSView/CAMetalLayer).
	NativeHandles() (display, window uintptr)
}
