// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"log/slog"

	"github.com/gogpu/gx"
)

// Handler receives the application lifecycle callbacks.
//
// Run calls Init once, then Update and Draw once per frame, and Close when
// the window is asked to close. Event is called for every window event
// before the frame's Update.
type Handler interface {
	// Init is called after the window and display exist. A non-nil error
	// aborts Run.
	Init(ctx *Context) error

	// Update advances the application by dt seconds.
	Update(dt float64)

	// Draw records the frame's draw commands.
	Draw(r *gx.Renderer)

	// Close reports whether the application agrees to exit. Returning
	// false keeps the loop running.
	Close() bool

	// Event delivers one window event.
	Event(e Event)
}

// BaseHandler implements every Handler method as a no-op. Close returns
// true.
type BaseHandler struct{}

func (BaseHandler) Init(*Context) error { return nil }
func (BaseHandler) Update(float64)      {}
func (BaseHandler) Draw(*gx.Renderer)   {}
func (BaseHandler) Close() bool         { return true }
func (BaseHandler) Event(Event)         {}

// Context is the application's view of the running loop.
type Context struct {
	renderer *gx.Renderer
	config   Config
	log      *slog.Logger

	width, height int
	quit          bool
}

// Renderer returns the Renderer handed to Draw.
func (c *Context) Renderer() *gx.Renderer { return c.renderer }

// Size returns the framebuffer size in pixels.
func (c *Context) Size() (width, height int) { return c.width, c.height }

// Aspect returns width/height of the framebuffer, or 1 when it is empty.
func (c *Context) Aspect() float32 {
	if c.width == 0 || c.height == 0 {
		return 1
	}
	return float32(c.width) / float32(c.height)
}

// FrameCount returns the number of frames completed so far.
func (c *Context) FrameCount() uint64 { return c.renderer.FrameCount() }

// Config returns the configuration Run was started with.
func (c *Context) Config() Config { return c.config }

// Logger returns the loop's logger.
func (c *Context) Logger() *slog.Logger { return c.log }

// LoadImage decodes an image file for use with Renderer.DrawImage.
func (c *Context) LoadImage(path string) (*gx.Image, error) {
	img, err := gx.LoadImage(path)
	if err != nil {
		return nil, err
	}
	c.log.Debug("image loaded", "key", img.Key, "width", img.Width, "height", img.Height)
	return img, nil
}

// Quit requests that the loop exit after the current frame. The request
// goes through Handler.Close like a window close.
func (c *Context) Quit() { c.quit = true }
