// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Renderer records draw commands for one frame at a time.
//
// Every Draw call appends exactly one DrawCommand and returns the Renderer
// for chaining:
//
//	r.SetBackground(gx.Black).
//		DrawRectangle(gx.At(0, 0).WithScale(0.5, 0.25), gx.Green).
//		DrawLine(gx.V2(-1, 0), gx.V2(1, 0), 0.01, gx.White)
//
// The frame driver hands Frame to a display and then calls EndFrame, which
// empties the list for the next frame. Images passed to DrawImage live in
// the Renderer's ImagePool for its whole lifetime.
//
// The Renderer is not safe for concurrent use.
type Renderer struct {
	commands   []DrawCommand
	images     *ImagePool
	background Color
	frame      uint64

	circles map[circleKey]*Mesh
}

type circleKey struct {
	radius   float32
	segments int
}

// NewRenderer creates an empty Renderer with a white background.
func NewRenderer() *Renderer {
	return &Renderer{
		commands:   make([]DrawCommand, 0, 64),
		images:     NewImagePool(),
		background: White,
		circles:    make(map[circleKey]*Mesh),
	}
}

// Draw appends a command verbatim.
func (r *Renderer) Draw(cmd DrawCommand) *Renderer {
	r.commands = append(r.commands, cmd)
	return r
}

// DrawMesh appends a solid-color draw of an arbitrary mesh.
func (r *Renderer) DrawMesh(mesh *Mesh, t Transform2D, c Color) *Renderer {
	return r.Draw(DrawCommand{Mesh: mesh, Transform: t, Color: c})
}

// DrawTriangle draws the unit triangle (see Triangle) under t.
func (r *Renderer) DrawTriangle(t Transform2D, c Color) *Renderer {
	return r.DrawMesh(Triangle(), t, c)
}

// DrawRectangle draws the unit rectangle (see Rectangle) under t. The
// rectangle's width and height are t.Scale.
func (r *Renderer) DrawRectangle(t Transform2D, c Color) *Renderer {
	return r.DrawMesh(Rectangle(), t, c)
}

// DrawCircle draws a circle of the given local radius under t.
// It panics if the circle parameters are invalid; use TryDrawCircle to
// get the error instead.
func (r *Renderer) DrawCircle(t Transform2D, radius float32, segments int, c Color) *Renderer {
	if err := r.TryDrawCircle(t, radius, segments, c); err != nil {
		panic(err)
	}
	return r
}

// TryDrawCircle is like DrawCircle but returns invalid parameters as an
// error and records nothing.
func (r *Renderer) TryDrawCircle(t Transform2D, radius float32, segments int, c Color) error {
	key := circleKey{radius: radius, segments: segments}
	mesh, ok := r.circles[key]
	if !ok {
		var err error
		mesh, err = Circle(radius, segments)
		if err != nil {
			return fmt.Errorf("draw circle: %w", err)
		}
		r.circles[key] = mesh
	}
	r.DrawMesh(mesh, t, c)
	return nil
}

// DrawPolygon fills the polygon outlined by points, in local space, under t.
// It panics if the outline cannot be triangulated; use TryDrawPolygon to
// get the error instead.
func (r *Renderer) DrawPolygon(t Transform2D, points []Vec2, c Color) *Renderer {
	if err := r.TryDrawPolygon(t, points, c); err != nil {
		panic(err)
	}
	return r
}

// TryDrawPolygon is like DrawPolygon but returns triangulation failures as
// an error and records nothing.
func (r *Renderer) TryDrawPolygon(t Transform2D, points []Vec2, c Color) error {
	mesh, err := Polygon(points)
	if err != nil {
		return fmt.Errorf("draw polygon: %w", err)
	}
	r.DrawMesh(mesh, t, c)
	return nil
}

// DrawLine draws a segment from start to end as a rectangle of the given
// thickness.
//
// The line is anchored at start: the unit rectangle is scaled to
// (length, thickness), rotated to the segment's angle, and moved from
// start along the rotated axis by half its length. The recorded
// Position is therefore the midpoint; LineEndpoints reverses the
// derivation.
func (r *Renderer) DrawLine(start, end Vec2, thickness float32, c Color) *Renderer {
	return r.DrawMesh(Rectangle(), LineTransform(start, end, thickness), c)
}

// LineTransform returns the rectangle transform DrawLine records.
func LineTransform(start, end Vec2, thickness float32) Transform2D {
	d := end.Sub(start)
	length := d.Length()
	angle := d.Angle()
	s, c := math32.Sincos(angle)
	return Transform2D{
		Position: start.Add(Vec2{X: c, Y: s}.Mul(length / 2)),
		Scale:    Vec2{X: length, Y: thickness},
		Rotation: angle,
	}
}

// LineEndpoints recovers the start, end and thickness of a transform built
// by LineTransform.
func LineEndpoints(t Transform2D) (start, end Vec2, thickness float32) {
	s, c := math32.Sincos(t.Rotation)
	half := Vec2{X: c, Y: s}.Mul(t.Scale.X / 2)
	return t.Position.Sub(half), t.Position.Add(half), t.Scale.Y
}

// DrawImage draws img on the unit rectangle under t without tint.
// Scale t to the image's aspect ratio to avoid stretching.
func (r *Renderer) DrawImage(t Transform2D, img *Image) *Renderer {
	return r.DrawImageTinted(t, img, None)
}

// DrawImageTinted draws img multiplied by tint.
func (r *Renderer) DrawImageTinted(t Transform2D, img *Image, tint Color) *Renderer {
	return r.Draw(DrawCommand{
		Mesh:      Rectangle(),
		Transform: t,
		Image:     r.images.Add(img),
		Color:     tint,
	})
}

// SetBackground sets the color the frame is cleared to.
func (r *Renderer) SetBackground(c Color) *Renderer {
	r.background = c
	return r
}

// Background returns the clear color.
func (r *Renderer) Background() Color {
	return r.background
}

// Images returns the Renderer's image arena.
func (r *Renderer) Images() *ImagePool {
	return r.images
}

// Commands returns the commands recorded so far this frame. The slice is
// only valid until EndFrame.
func (r *Renderer) Commands() []DrawCommand {
	return r.commands
}

// Len returns the number of commands recorded this frame.
func (r *Renderer) Len() int {
	return len(r.commands)
}

// FrameCount returns the number of completed frames.
func (r *Renderer) FrameCount() uint64 {
	return r.frame
}

// Frame returns the current frame view. It shares the command list, so the
// backend must consume it before EndFrame is called.
func (r *Renderer) Frame() Frame {
	return Frame{
		Index:      r.frame,
		Commands:   r.commands,
		Background: r.background,
		Images:     r.images,
	}
}

// EndFrame discards the recorded commands and advances the frame counter.
// Call it once per frame, after the backend has rendered Frame.
func (r *Renderer) EndFrame() {
	clear(r.commands)
	r.commands = r.commands[:0]
	r.frame++
}

// TakeCommands returns the recorded commands and advances to the next
// frame. The returned slice is owned by the caller.
func (r *Renderer) TakeCommands() []DrawCommand {
	cmds := r.commands
	r.commands = make([]DrawCommand, 0, cap(cmds))
	r.frame++
	return cmds
}
