// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package app drives a gx application: it opens a window, creates a
// display for it and runs the frame loop.
//
// An application implements Handler, usually by embedding BaseHandler and
// overriding the hooks it needs:
//
//	type game struct {
//		app.BaseHandler
//		angle float32
//	}
//
//	func (g *game) Update(dt float64) { g.angle += float32(dt) }
//
//	func (g *game) Draw(r *gx.Renderer) {
//		r.SetBackground(gx.Black).
//			DrawRectangle(gx.At(0, 0).WithScale(0.5, 0.5).WithRotation(g.angle), gx.Red)
//	}
//
//	func main() {
//		if err := app.Run(&game{}, app.WithConfig(app.Config{Title: "spin"})); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// Each iteration polls window events, applies a pending resize, calls
// Update and Draw, renders the recorded frame and sleeps until the next
// frame is due.
//
// By default the window and its event pump belong to gogpu, which is
// pure Go and builds with CGO_ENABLED=0. Draw and the render run on
// gogpu's render thread while the main thread waits for them; the other
// Handler methods run on the goroutine that called Run. gogpu cannot keep
// its window open once the user closes it, so a Close veto only holds for
// Context.Quit.
//
// Build with -tags nowindow to drop gogpu; Run then needs a window
// supplied with WithWindow.
package app
