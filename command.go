// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

// DrawCommand is one recorded intent to draw a mesh.
//
// Commands are small values: the mesh is shared, the image is an arena
// reference into the recording Renderer's ImagePool.
type DrawCommand struct {
	// Mesh is the local-space geometry.
	Mesh *Mesh

	// Transform maps Mesh into draw space.
	Transform Transform2D

	// Image is the texture to sample, or NoImage for a solid fill of Color.
	Image ImageRef

	// Color is the fill color for untextured commands and the tint
	// multiplied with the texture for textured ones.
	Color Color
}

// Textured reports whether the command samples an image.
func (c DrawCommand) Textured() bool {
	return c.Image.IsValid()
}

// Frame is the read-only view of one recorded frame handed to a backend.
type Frame struct {
	// Index is the zero-based frame number.
	Index uint64

	// Commands in paint order.
	Commands []DrawCommand

	// Background is the clear color.
	Background Color

	// Images resolves the commands' image refs.
	Images *ImagePool
}

// Image returns the image a command refers to, or nil for solid commands.
func (f Frame) Image(c DrawCommand) *Image {
	return f.Images.Get(c.Image)
}
