// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

import "github.com/chewxy/math32"

// Transform2D places local mesh space into draw space.
//
// The composed matrix is translate ∘ rotate ∘ scale: a local point is
// scaled first, then rotated counter-clockwise by Rotation radians about
// the local origin, then moved to Position.
//
// Transform2D is a value type; commands keep their own copy.
type Transform2D struct {
	Position Vec2
	Scale    Vec2
	Rotation float32
}

// Identity returns the transform that leaves local space unchanged.
func Identity() Transform2D {
	return Transform2D{Scale: Vec2{X: 1, Y: 1}}
}

// At returns an unscaled, unrotated transform positioned at (x, y).
func At(x, y float32) Transform2D {
	return Transform2D{Position: Vec2{X: x, Y: y}, Scale: Vec2{X: 1, Y: 1}}
}

// WithScale returns a copy of t with the given scale.
func (t Transform2D) WithScale(sx, sy float32) Transform2D {
	t.Scale = Vec2{X: sx, Y: sy}
	return t
}

// WithRotation returns a copy of t rotated to angle radians.
func (t Transform2D) WithRotation(angle float32) Transform2D {
	t.Rotation = angle
	return t
}

// WithPosition returns a copy of t moved to (x, y).
func (t Transform2D) WithPosition(x, y float32) Transform2D {
	t.Position = Vec2{X: x, Y: y}
	return t
}

// Apply maps a local point into draw space.
func (t Transform2D) Apply(p Vec2) Vec2 {
	s, c := math32.Sincos(t.Rotation)
	x := p.X * t.Scale.X
	y := p.Y * t.Scale.Y
	return Vec2{
		X: x*c - y*s + t.Position.X,
		Y: x*s + y*c + t.Position.Y,
	}
}

// Matrix returns the column-major 4x4 matrix of the transform, laid out
// for a WGSL mat4x4<f32> uniform.
func (t Transform2D) Matrix() Mat4 {
	s, c := math32.Sincos(t.Rotation)
	return Mat4{
		c * t.Scale.X, s * t.Scale.X, 0, 0,
		-s * t.Scale.Y, c * t.Scale.Y, 0, 0,
		0, 0, 1, 0,
		t.Position.X, t.Position.Y, 0, 1,
	}
}

// Mat4 is a column-major 4x4 float32 matrix.
type Mat4 [16]float32

// IdentityMat4 returns the 4x4 identity matrix.
func IdentityMat4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// TransformPoint applies m to (p.X, p.Y, 0, 1) and drops z and w.
func (m Mat4) TransformPoint(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[4]*p.Y + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[13],
	}
}
