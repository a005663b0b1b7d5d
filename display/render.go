// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package display

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gx"
	"github.com/gogpu/gx/internal/gpu"
	"github.com/gogpu/wgpu/hal"
)

// Render draws frame into the next surface texture and presents it.
//
// Commands are drawn in order in a single pass cleared to the frame's
// background. Untextured commands sample a cached 1×1 texture of their
// color; textured ones sample their image tinted by the command color.
//
// Render returns nil when the frame is skipped because the surface is
// zero-sized, lost, outdated or not ready; the surface is reconfigured
// before the next attempt. It returns an error wrapping hal.ErrDeviceLost
// when the device is gone, and wrapped errors for invalid commands. A
// hosted Display has no surface and returns ErrNoSurface.
func (d *Display) Render(frame gx.Frame) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if d.surface == nil {
		return ErrNoSurface
	}
	if d.width == 0 || d.height == 0 {
		d.skipped.Add(1)
		d.log.Debug("frame skipped", "stage", "size", "width", d.width, "height", d.height)
		return nil
	}
	if d.reconfigure || !d.configured {
		if err := d.configure(); err != nil {
			if errors.Is(err, hal.ErrDeviceLost) {
				return err
			}
			return d.skip("configure", err)
		}
	}

	acquired, err := d.surface.AcquireTexture(nil)
	if err != nil {
		if transient(err) {
			return d.skip("acquire", err)
		}
		return fmt.Errorf("display: acquire surface texture: %w", err)
	}
	if acquired.Suboptimal {
		d.reconfigure = true
	}

	if err := d.stage(frame); err != nil {
		d.surface.DiscardTexture(acquired.Texture)
		return err
	}

	if err := d.present(frame.Background, acquired.Texture); err != nil {
		if transient(err) {
			return d.skip("present", err)
		}
		return err
	}

	d.frames.Add(1)
	d.lastDraws.Store(uint64(d.batch.Len()))
	return nil
}

// RenderTo draws frame into view, a width×height color target in
// SurfaceFormat owned by the caller. Nothing is presented; the owner of
// view presents it. Zero sizes skip the frame.
func (d *Display) RenderTo(frame gx.Frame, view hal.TextureView, width, height int) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if view == nil || width <= 0 || height <= 0 {
		d.skipped.Add(1)
		d.log.Debug("frame skipped", "stage", "target", "width", width, "height", height)
		return nil
	}
	if d.surface == nil {
		d.width, d.height = width, height
	}

	if err := d.stage(frame); err != nil {
		return err
	}
	if err := d.submit(frame.Background, view); err != nil {
		return err
	}
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("display: wait idle: %w", err)
	}

	d.frames.Add(1)
	d.lastDraws.Store(uint64(d.batch.Len()))
	return nil
}

// stage resolves every command's texture and uploads the frame's geometry
// and uniforms.
func (d *Display) stage(frame gx.Frame) error {
	d.batch.Reset()
	for i, cmd := range frame.Commands {
		if cmd.Mesh == nil {
			return fmt.Errorf("display: command %d: %w", i, ErrNilMesh)
		}
		tex, tint, err := d.resolve(frame, cmd)
		if err != nil {
			return fmt.Errorf("display: command %d: %w", i, err)
		}
		d.batch.Add(cmd.Mesh, cmd.Transform.Matrix(), tint, tex)
	}
	if err := d.buffers.Upload(d.batch); err != nil {
		return fmt.Errorf("display: upload frame %d: %w", frame.Index, err)
	}
	return nil
}

// resolve returns the texture and uniform tint of cmd. Solid commands use
// a white tint so their color is not applied twice.
func (d *Display) resolve(frame gx.Frame, cmd gx.DrawCommand) (*gpu.Texture, gx.Color, error) {
	if !cmd.Textured() {
		tex, err := d.textures.resolveSolid(cmd.Color)
		return tex, gx.None, err
	}
	img := frame.Image(cmd)
	if img == nil {
		return nil, gx.Color{}, fmt.Errorf("image ref %d: %w", cmd.Image, ErrUnknownImage)
	}
	tex, err := d.textures.resolve(img)
	return tex, cmd.Color, err
}

// present renders into the acquired surface texture, presents it and
// waits for the GPU so the staging buffers can be rewritten next frame.
func (d *Display) present(background gx.Color, target hal.SurfaceTexture) error {
	view, err := d.device.CreateTextureView(target, &hal.TextureViewDescriptor{
		Label:           d.opts.label + "_surface_view",
		Format:          d.config.Format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		d.surface.DiscardTexture(target)
		return fmt.Errorf("display: create surface view: %w", err)
	}
	defer d.device.DestroyTextureView(view)

	if err := d.submit(background, view); err != nil {
		d.surface.DiscardTexture(target)
		return err
	}
	presentErr := d.queue.Present(d.surface, target, nil)
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("display: wait idle: %w", err)
	}
	if presentErr != nil {
		return fmt.Errorf("display: present: %w", presentErr)
	}
	return nil
}

// submit encodes one render pass over view, cleared to background, with
// the staged draws, and submits it.
func (d *Display) submit(background gx.Color, view hal.TextureView) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: d.opts.label + "_frame"})
	if err != nil {
		return fmt.Errorf("display: create command encoder: %w", err)
	}
	defer encoder.Destroy()

	if err := encoder.BeginEncoding(d.opts.label + "_frame"); err != nil {
		return fmt.Errorf("display: begin encoding: %w", err)
	}

	bg := background.Vec4()
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: d.opts.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  gputypes.LoadOpClear,
				StoreOp: gputypes.StoreOpStore,
				ClearValue: gputypes.Color{
					R: float64(bg[0]),
					G: float64(bg[1]),
					B: float64(bg[2]),
					A: float64(bg[3]),
				},
			},
		},
	})
	d.buffers.Record(rp, d.batch)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("display: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("display: submit: %w", err)
	}
	return nil
}
