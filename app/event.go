// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import "github.com/gogpu/gpucontext"

// Event is a window event delivered to Handler.Event.
//
// The concrete types are KeyEvent, CharEvent, MouseMoveEvent,
// MouseButtonEvent, ScrollEvent, ResizeEvent, FocusEvent and CloseEvent.
type Event interface {
	event()
}

// KeyEvent reports a physical key transition.
type KeyEvent struct {
	Key     gpucontext.Key
	Mods    gpucontext.Modifiers
	Pressed bool
	// Repeat is set for auto-repeated presses.
	Repeat bool
}

// CharEvent reports text input after keyboard layout processing.
type CharEvent struct {
	Char rune
}

// MouseMoveEvent reports the cursor position in window pixels.
type MouseMoveEvent struct {
	X, Y float64
}

// MouseButtonEvent reports a button transition at the cursor position.
type MouseButtonEvent struct {
	Button  gpucontext.MouseButton
	Mods    gpucontext.Modifiers
	Pressed bool
	X, Y    float64
}

// ScrollEvent reports wheel or trackpad scrolling.
type ScrollEvent struct {
	DX, DY float64
}

// ResizeEvent reports a new framebuffer size in pixels.
type ResizeEvent struct {
	Width, Height int
}

// FocusEvent reports the window gaining or losing input focus.
type FocusEvent struct {
	Focused bool
}

// CloseEvent reports a close request. The request is honored only if
// Handler.Close returns true.
type CloseEvent struct{}

func (KeyEvent) event()         {}
func (CharEvent) event()        {}
func (MouseMoveEvent) event()   {}
func (MouseButtonEvent) event() {}
func (ScrollEvent) event()      {}
func (ResizeEvent) event()      {}
func (FocusEvent) event()       {}
func (CloseEvent) event()       {}
