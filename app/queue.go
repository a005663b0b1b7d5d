// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"sync"

	"github.com/gogpu/gpucontext"
)

// eventQueue collects window callbacks as Events until the loop polls
// them. Cursor positions arrive in logical points and are stored in
// pixels; modifiers of the last key transition are attached to mouse
// buttons, whose callbacks carry none.
type eventQueue struct {
	scale func() float64

	mu     sync.Mutex
	events []Event
	mods   gpucontext.Modifiers
	down   map[gpucontext.Key]bool
}

func newEventQueue(scale func() float64) *eventQueue {
	return &eventQueue{scale: scale, down: make(map[gpucontext.Key]bool)}
}

func (q *eventQueue) push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Poll returns the queued events in arrival order and empties the queue.
func (q *eventQueue) Poll() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	evs := q.events
	q.events = nil
	return evs
}

// key records a key transition. A press of a key that is already down is
// an auto-repeat.
func (q *eventQueue) key(k gpucontext.Key, mods gpucontext.Modifiers, pressed bool) {
	q.mu.Lock()
	repeat := pressed && q.down[k]
	if pressed {
		q.down[k] = true
	} else {
		delete(q.down, k)
	}
	q.mods = mods
	q.events = append(q.events, KeyEvent{Key: k, Mods: mods, Pressed: pressed, Repeat: repeat})
	q.mu.Unlock()
}

// text queues one CharEvent per rune of s.
func (q *eventQueue) text(s string) {
	q.mu.Lock()
	for _, r := range s {
		q.events = append(q.events, CharEvent{Char: r})
	}
	q.mu.Unlock()
}

func (q *eventQueue) mouseMove(x, y float64) {
	s := q.pixels()
	q.push(MouseMoveEvent{X: x * s, Y: y * s})
}

func (q *eventQueue) mouseButton(b gpucontext.MouseButton, x, y float64, pressed bool) {
	s := q.pixels()
	q.mu.Lock()
	q.events = append(q.events, MouseButtonEvent{
		Button:  b,
		Mods:    q.mods,
		Pressed: pressed,
		X:       x * s,
		Y:       y * s,
	})
	q.mu.Unlock()
}

func (q *eventQueue) scroll(dx, dy float64) {
	q.push(ScrollEvent{DX: dx, DY: dy})
}

// resize queues a framebuffer size. Empty sizes from minimized windows
// are kept so the handler sees them.
func (q *eventQueue) resize(width, height int) {
	q.push(ResizeEvent{Width: width, Height: height})
}

func (q *eventQueue) pixels() float64 {
	if q.scale == nil {
		return 1
	}
	if s := q.scale(); s > 0 {
		return s
	}
	return 1
}

// connect registers the queue on src.
func (q *eventQueue) connect(src gpucontext.EventSource) {
	src.OnKeyPress(func(k gpucontext.Key, m gpucontext.Modifiers) { q.key(k, m, true) })
	src.OnKeyRelease(func(k gpucontext.Key, m gpucontext.Modifiers) { q.key(k, m, false) })
	src.OnTextInput(q.text)
	src.OnMouseMove(q.mouseMove)
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) { q.mouseButton(b, x, y, true) })
	src.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) { q.mouseButton(b, x, y, false) })
	src.OnScroll(q.scroll)
	src.OnFocus(func(focused bool) { q.push(FocusEvent{Focused: focused}) })
}
