// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/chewxy/math32"
)

// Mesh generation errors.
var (
	// ErrTooFewSegments is returned when a circle has fewer than 3 segments.
	ErrTooFewSegments = errors.New("gx: circle needs at least 3 segments")

	// ErrInvalidRadius is returned for a zero, negative, or NaN circle radius.
	ErrInvalidRadius = errors.New("gx: circle radius must be positive")

	// ErrTooFewPoints is returned when a polygon has fewer than 3 points.
	ErrTooFewPoints = errors.New("gx: polygon needs at least 3 points")

	// ErrDegeneratePolygon is returned when a polygon cannot be triangulated,
	// e.g. it has zero area or intersects itself.
	ErrDegeneratePolygon = errors.New("gx: degenerate polygon")

	// ErrMalformedMesh is returned by NewMesh for index lists that are not
	// a valid triangle list over the given vertices.
	ErrMalformedMesh = errors.New("gx: malformed mesh")
)

// MaxMeshVertices is the largest vertex count addressable by 16-bit indices.
const MaxMeshVertices = math.MaxUint16 + 1

// Vertex is a mesh vertex as laid out in the GPU vertex buffer.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
}

// Mesh is an immutable triangle list in local space.
//
// Every index is below the vertex count and the index count is a multiple
// of 3. Meshes are shared read-only across commands and frames.
type Mesh struct {
	id       uint64
	vertices []Vertex
	indices  []uint16
}

var meshIDs atomic.Uint64

// NewMesh validates and wraps the given triangle list. The slices are
// copied.
func NewMesh(vertices []Vertex, indices []uint16) (*Mesh, error) {
	if len(vertices) > MaxMeshVertices {
		return nil, fmt.Errorf("%w: %d vertices exceed 16-bit index range", ErrMalformedMesh, len(vertices))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrMalformedMesh, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%w: index %d at %d out of range [0,%d)", ErrMalformedMesh, idx, i, len(vertices))
		}
	}
	return newMesh(append([]Vertex(nil), vertices...), append([]uint16(nil), indices...)), nil
}

// newMesh wraps already validated slices without copying.
func newMesh(vertices []Vertex, indices []uint16) *Mesh {
	return &Mesh{
		id:       meshIDs.Add(1),
		vertices: vertices,
		indices:  indices,
	}
}

// ID returns a process-unique identifier for the mesh.
func (m *Mesh) ID() uint64 { return m.id }

// Vertices returns the vertex list. Callers must not modify it.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// Indices returns the index list. Callers must not modify it.
func (m *Mesh) Indices() []uint16 { return m.indices }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int { return len(m.indices) }

var (
	triangleOnce sync.Once
	triangleMesh *Mesh

	rectangleOnce sync.Once
	rectangleMesh *Mesh
)

// Triangle returns the shared unit triangle: apex (0,1), base on y=-1
// from x=-1 to x=1, wound counter-clockwise.
func Triangle() *Mesh {
	triangleOnce.Do(func() {
		triangleMesh = newMesh([]Vertex{
			{Position: [3]float32{-1, -1, 0}, UV: [2]float32{0, 1}},
			{Position: [3]float32{1, -1, 0}, UV: [2]float32{1, 1}},
			{Position: [3]float32{0, 1, 0}, UV: [2]float32{0.5, 0}},
		}, []uint16{0, 1, 2})
	})
	return triangleMesh
}

// Rectangle returns the shared unit rectangle covering [-0.5,0.5]².
// UV (0,0) is the top-left corner and (1,1) the bottom-right, so images
// appear upright. Both triangles are wound counter-clockwise.
func Rectangle() *Mesh {
	rectangleOnce.Do(func() {
		rectangleMesh = newMesh([]Vertex{
			{Position: [3]float32{-0.5, 0.5, 0}, UV: [2]float32{0, 0}},  // top-left
			{Position: [3]float32{-0.5, -0.5, 0}, UV: [2]float32{0, 1}}, // bottom-left
			{Position: [3]float32{0.5, 0.5, 0}, UV: [2]float32{1, 0}},   // top-right
			{Position: [3]float32{0.5, -0.5, 0}, UV: [2]float32{1, 1}},  // bottom-right
		}, []uint16{0, 1, 2, 2, 1, 3})
	})
	return rectangleMesh
}

// Circle returns a triangle fan approximating a circle of the given
// radius centered on the origin.
//
// Vertex 0 is the center; vertices 1..segments lie on the rim at angle
// 2π·i/segments starting from +X. Triangle i is center, rim[i], rim[i+1],
// with the last triangle closing back to rim[0].
func Circle(radius float32, segments int) (*Mesh, error) {
	if segments < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSegments, segments)
	}
	if !(radius > 0) || math32.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	if segments+1 > MaxMeshVertices {
		return nil, fmt.Errorf("%w: %d segments exceed 16-bit index range", ErrMalformedMesh, segments)
	}

	vertices := make([]Vertex, 0, segments+1)
	vertices = append(vertices, Vertex{UV: [2]float32{0.5, 0.5}})

	step := 2 * math32.Pi / float32(segments)
	for i := 0; i < segments; i++ {
		s, c := math32.Sincos(step * float32(i))
		vertices = append(vertices, Vertex{
			Position: [3]float32{radius * c, radius * s, 0},
			UV:       [2]float32{0.5 + c*0.5, 0.5 - s*0.5},
		})
	}

	indices := make([]uint16, 0, segments*3)
	for i := 1; i <= segments; i++ {
		next := i + 1
		if next > segments {
			next = 1
		}
		indices = append(indices, 0, uint16(i), uint16(next)) //nolint:gosec // bounded by MaxMeshVertices above
	}

	return newMesh(vertices, indices), nil
}
