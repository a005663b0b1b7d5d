// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gx"
)

// Draw is one staged draw: where its mesh lives in the frame's vertex and
// index buffers, and which uniform slot holds its transform and color.
type Draw struct {
	VertexOffset  uint64 // bytes into the vertex buffer
	IndexOffset   uint64 // bytes into the index buffer
	IndexCount    uint32
	UniformOffset uint32 // dynamic offset into the uniform buffer
	Texture       *Texture
}

type meshSpan struct {
	vertexOffset uint64
	indexOffset  uint64
	indexCount   uint32
}

// Batch accumulates one frame's worth of GPU input on the CPU. Each mesh is
// staged once per frame no matter how many commands reference it. The byte
// slices are reused across frames.
type Batch struct {
	vertices []byte
	indices  []byte
	uniforms []byte
	draws    []Draw
	meshes   map[uint64]meshSpan
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{meshes: make(map[uint64]meshSpan)}
}

// Reset empties the batch, keeping its capacity.
func (b *Batch) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.uniforms = b.uniforms[:0]
	b.draws = b.draws[:0]
	clear(b.meshes)
}

// Add stages mesh with the given clip-space transform and tint, to be
// sampled from tex, and returns the resulting draw.
func (b *Batch) Add(mesh *gx.Mesh, transform gx.Mat4, tint gx.Color, tex *Texture) Draw {
	span, ok := b.meshes[mesh.ID()]
	if !ok {
		span = b.stageMesh(mesh)
		b.meshes[mesh.ID()] = span
	}

	offset := uint32(len(b.uniforms))
	b.uniforms = appendUniform(b.uniforms, transform, tint)

	d := Draw{
		VertexOffset:  span.vertexOffset,
		IndexOffset:   span.indexOffset,
		IndexCount:    span.indexCount,
		UniformOffset: offset,
		Texture:       tex,
	}
	b.draws = append(b.draws, d)
	return d
}

func (b *Batch) stageMesh(mesh *gx.Mesh) meshSpan {
	span := meshSpan{
		vertexOffset: uint64(len(b.vertices)),
		indexOffset:  uint64(len(b.indices)),
		indexCount:   uint32(mesh.IndexCount()),
	}
	for _, v := range mesh.Vertices() {
		b.vertices = appendFloats(b.vertices, v.Position[0], v.Position[1], v.Position[2], v.UV[0], v.UV[1])
	}
	for _, i := range mesh.Indices() {
		b.indices = binary.LittleEndian.AppendUint16(b.indices, i)
	}
	// Keep every mesh's index range 4-byte aligned.
	if len(b.indices)%4 != 0 {
		b.indices = append(b.indices, 0, 0)
	}
	return span
}

// appendUniform writes one UniformSlotStride-sized slot: the matrix, the
// color and zero padding.
func appendUniform(dst []byte, m gx.Mat4, c gx.Color) []byte {
	start := len(dst)
	dst = appendFloats(dst, m[:]...)
	v := c.Vec4()
	dst = appendFloats(dst, v[:]...)
	for len(dst)-start < UniformSlotStride {
		dst = append(dst, 0)
	}
	return dst
}

func appendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

// Vertices returns the staged vertex bytes.
func (b *Batch) Vertices() []byte { return b.vertices }

// Indices returns the staged uint16 index bytes.
func (b *Batch) Indices() []byte { return b.indices }

// Uniforms returns the staged uniform slots.
func (b *Batch) Uniforms() []byte { return b.uniforms }

// Draws returns the staged draws in submission order.
func (b *Batch) Draws() []Draw { return b.draws }

// Len returns the number of staged draws.
func (b *Batch) Len() int { return len(b.draws) }

// MeshCount returns the number of distinct meshes staged this frame.
func (b *Batch) MeshCount() int { return len(b.meshes) }
