// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gx provides a small real-time 2D rendering toolkit for Go.
//
// # Overview
//
// An application records draw instructions into a [Renderer] once per frame.
// Each instruction pairs a [Mesh] with a [Transform2D], a color and an
// optional [Image]. The display package turns the recorded [Frame] into GPU
// work through gogpu/wgpu, and the app package drives the window, the event
// loop and frame pacing.
//
// # Quick Start
//
//	type game struct{ app.BaseHandler }
//
//	func (g *game) Draw(r *gx.Renderer) {
//	    r.DrawTriangle(gx.At(0, 0), gx.Red).
//	        DrawCircle(gx.At(0.5, 0.5).WithScale(0.2, 0.2), 1, 32, gx.Blue).
//	        DrawLine(gx.V2(-1, -1), gx.V2(1, 1), 0.01, gx.Black)
//	}
//
//	func main() {
//	    if err := app.Run(&game{}); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Coordinate System
//
// Draw space is the normalized device space of the window:
//   - Origin (0,0) at the center
//   - X increases right, Y increases up, both spanning [-1, 1]
//   - Angles in radians, 0 is right, increasing counter-clockwise
//
// Built-in meshes are wound counter-clockwise in that space.
//
// # Ordering
//
// Commands are drawn in the order they were recorded. Later commands paint
// over earlier ones; there is no depth sorting.
package gx

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
