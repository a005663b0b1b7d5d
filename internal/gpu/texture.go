// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// TextureFormat is the format of every sampled texture: straight-alpha RGBA8
// decoded as sRGB.
const TextureFormat = gputypes.TextureFormatRGBA8UnormSrgb

// ErrPixelSize is returned when the pixel slice does not match the texture
// dimensions.
var ErrPixelSize = errors.New("gpu: pixel data does not match texture size")

// Texture is an uploaded image: the GPU texture, its view and the group 1
// bind group pairing the view with the pipeline sampler.
type Texture struct {
	label  string
	width  uint32
	height uint32

	texture   hal.Texture
	view      hal.TextureView
	bindGroup hal.BindGroup
}

// NewTexture creates a width×height texture, uploads pix (tightly packed
// RGBA8, 4*width bytes per row) and builds its bind group against p.
func NewTexture(device hal.Device, queue hal.Queue, p *SpritePipeline, label string, width, height int, pix []byte) (*Texture, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if width <= 0 || height <= 0 || len(pix) != 4*width*height {
		return nil, fmt.Errorf("texture %q %dx%d with %d bytes: %w", label, width, height, len(pix), ErrPixelSize)
	}
	t := &Texture{label: label, width: uint32(width), height: uint32(height)}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        TextureFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", label, err)
	}
	t.texture = tex

	if err := t.Write(queue, pix); err != nil {
		t.Destroy(device)
		return nil, err
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        TextureFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Destroy(device)
		return nil, fmt.Errorf("create texture view %q: %w", label, err)
	}
	t.view = view

	bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind_group",
		Layout: p.TextureLayout(),
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: p.Sampler().NativeHandle()}},
		},
	})
	if err != nil {
		t.Destroy(device)
		return nil, fmt.Errorf("create texture bind group %q: %w", label, err)
	}
	t.bindGroup = bg

	return t, nil
}

// Write re-uploads the full texture contents. Used for the initial upload
// and to restore textures after the device was recreated.
func (t *Texture) Write(queue hal.Queue, pix []byte) error {
	if len(pix) != int(4*t.width*t.height) {
		return fmt.Errorf("texture %q: %w", t.label, ErrPixelSize)
	}
	err := queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Aspect:   gputypes.TextureAspectAll,
		},
		pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  4 * t.width,
			RowsPerImage: t.height,
		},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("upload texture %q: %w", t.label, err)
	}
	return nil
}

// BindGroup returns the group 1 bind group.
func (t *Texture) BindGroup() hal.BindGroup { return t.bindGroup }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return int(t.width) }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return int(t.height) }

// Label returns the debug label, normally the image key.
func (t *Texture) Label() string { return t.label }

// Destroy releases the bind group, view and texture in that order.
func (t *Texture) Destroy(device hal.Device) {
	if t == nil || device == nil {
		return
	}
	if t.bindGroup != nil {
		device.DestroyBindGroup(t.bindGroup)
		t.bindGroup = nil
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
