// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu holds the hal-level building blocks behind the display backend.
//
// It is an internal package. The display package owns the device, queue and
// surface; this package turns them into the pieces a frame needs:
//
//   - SpritePipeline: the single render pipeline (WGSL sprite shader, bind
//     group layouts, sampler) that every draw goes through
//   - Texture: an uploaded RGBA8 sRGB texture with its view and bind group
//   - Buffer: a grow-only GPU buffer rewritten once per frame
//   - Batch: CPU staging for one frame's vertices, indices and uniform slots
//
// All GPU access goes through the gogpu/wgpu hal interfaces, so the package
// runs unchanged on Vulkan, Metal, DX12, GLES and the noop backend used in
// tests.
//
// # Shader interface
//
// Group 0 binding 0 is a uniform block {transform: mat4x4<f32>, color:
// vec4<f32>} bound with a dynamic offset, one 256-byte slot per draw.
// Group 1 holds the texture (binding 0) and sampler (binding 1). The
// fragment output is the sampled texel multiplied by the uniform color.
package gpu
