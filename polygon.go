// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

import (
	"fmt"

	"github.com/chewxy/math32"
)

// polygonEpsilon is the area, relative to the squared extent of the
// polygon's bounding box, below which a polygon or ear is treated as
// collinear.
const polygonEpsilon = 1e-6

// Polygon triangulates the filled interior of a simple closed polygon by
// ear clipping. Convex and concave outlines are both supported; points may
// be given in either winding and the loop is closed implicitly.
//
// Self-intersecting outlines are rejected with ErrDegeneratePolygon when
// no ear can be clipped. UVs map the polygon's bounding box to [0,1]² with
// (0,0) at the top-left.
func Polygon(points []Vec2) (*Mesh, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	pts := dedupePoints(points)
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: fewer than 3 distinct points", ErrDegeneratePolygon)
	}
	if len(pts) > MaxMeshVertices {
		return nil, fmt.Errorf("%w: %d points exceed 16-bit index range", ErrMalformedMesh, len(pts))
	}

	eps := areaEpsilon(pts)
	area := signedArea(pts)
	if math32.Abs(area) < eps {
		return nil, fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	indices, err := earClip(pts, eps)
	if err != nil {
		return nil, err
	}

	return newMesh(boundsMappedVertices(pts), indices), nil
}

// dedupePoints drops consecutive duplicates, including a closing point
// equal to the first.
func dedupePoints(points []Vec2) []Vec2 {
	out := make([]Vec2, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// areaEpsilon scales polygonEpsilon by the squared extent of pts so the
// collinearity test does not depend on the polygon's absolute size.
func areaEpsilon(pts []Vec2) float32 {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	extent := max(maxX-minX, maxY-minY)
	return polygonEpsilon * extent * extent
}

// signedArea returns the shoelace area; positive for counter-clockwise.
func signedArea(pts []Vec2) float32 {
	var sum float32
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].Cross(pts[j])
	}
	return sum / 2
}

// earClip triangulates a counter-clockwise simple polygon.
func earClip(pts []Vec2, eps float32) ([]uint16, error) {
	remaining := make([]int, len(pts))
	for i := range remaining {
		remaining[i] = i
	}
	indices := make([]uint16, 0, (len(pts)-2)*3)

	for len(remaining) > 3 {
		clipped := false
		n := len(remaining)
		for i := 0; i < n; i++ {
			ia, ib, ic := remaining[(i+n-1)%n], remaining[i], remaining[(i+1)%n]
			a, b, c := pts[ia], pts[ib], pts[ic]

			turn := b.Sub(a).Cross(c.Sub(b))
			if math32.Abs(turn) < eps {
				// Collinear vertex contributes no area.
				remaining = append(remaining[:i], remaining[i+1:]...)
				clipped = true
				break
			}
			if turn < 0 {
				continue // reflex
			}
			if containsAny(pts, remaining, ia, ib, ic) {
				continue
			}

			indices = append(indices, uint16(ia), uint16(ib), uint16(ic)) //nolint:gosec // bounded by MaxMeshVertices
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, fmt.Errorf("%w: no ear found (self-intersecting outline?)", ErrDegeneratePolygon)
		}
	}

	a, b, c := pts[remaining[0]], pts[remaining[1]], pts[remaining[2]]
	if math32.Abs(b.Sub(a).Cross(c.Sub(b))) >= eps {
		indices = append(indices, uint16(remaining[0]), uint16(remaining[1]), uint16(remaining[2])) //nolint:gosec // bounded by MaxMeshVertices
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}
	return indices, nil
}

// containsAny reports whether any remaining vertex other than the ear's
// corners lies inside or on the triangle (ia, ib, ic).
func containsAny(pts []Vec2, remaining []int, ia, ib, ic int) bool {
	a, b, c := pts[ia], pts[ib], pts[ic]
	for _, k := range remaining {
		if k == ia || k == ib || k == ic {
			continue
		}
		p := pts[k]
		if p == a || p == b || p == c {
			continue
		}
		if b.Sub(a).Cross(p.Sub(a)) >= 0 &&
			c.Sub(b).Cross(p.Sub(b)) >= 0 &&
			a.Sub(c).Cross(p.Sub(c)) >= 0 {
			return true
		}
	}
	return false
}

// boundsMappedVertices builds vertices whose UVs map the bounding box of
// pts onto [0,1]², v growing downward.
func boundsMappedVertices(pts []Vec2) []Vertex {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math32.Min(minX, p.X)
		minY = math32.Min(minY, p.Y)
		maxX = math32.Max(maxX, p.X)
		maxY = math32.Max(maxY, p.Y)
	}
	w, h := maxX-minX, maxY-minY
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	vertices := make([]Vertex, len(pts))
	for i, p := range pts {
		vertices[i] = Vertex{
			Position: [3]float32{p.X, p.Y, 0},
			UV:       [2]float32{(p.X - minX) / w, (maxY - p.Y) / h},
		}
	}
	return vertices
}
