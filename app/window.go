// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"errors"

	"github.com/gogpu/gx/display"
)

// ErrNoWindowSystem is returned by Run when no window was supplied and
// the build has no native window support (the nowindow tag).
var ErrNoWindowSystem = errors.New("app: no window system available")

// Window is a native window Run can render into.
//
// Size reports logical points and ScaleFactor the pixel ratio, as for
// display.WindowHandle. Poll must be called on the goroutine that created
// the window.
type Window interface {
	display.WindowHandle

	// Poll processes pending window system events and returns them in
	// arrival order.
	Poll() []Event

	// Destroy closes the window.
	Destroy()
}

// pixelSize returns the window size in framebuffer pixels.
func pixelSize(w Window) (int, int) {
	width, height := w.Size()
	scale := w.ScaleFactor()
	return int(float64(width) * scale), int(float64(height) * scale)
}
