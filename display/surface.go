// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package display

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// surfaceConfig picks the surface parameters: an sRGB format when the
// surface offers one, else its first format; the first alpha mode; the
// requested present mode when supported, else FIFO. Width and height are
// filled in by configure.
func surfaceConfig(caps *hal.SurfaceCapabilities, mode hal.PresentMode) (hal.SurfaceConfiguration, error) {
	if caps == nil || len(caps.Formats) == 0 {
		return hal.SurfaceConfiguration{}, ErrNoSurfaceFormat
	}

	format := caps.Formats[0]
	for _, f := range caps.Formats {
		if f.IsSrgb() {
			format = f
			break
		}
	}

	alpha := hal.CompositeAlphaModeOpaque
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}

	if !slices.Contains(caps.PresentModes, mode) {
		mode = hal.PresentModeFifo
	}

	return hal.SurfaceConfiguration{
		Format:      format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: mode,
		AlphaMode:   alpha,
	}, nil
}

// Resize records the new surface size in pixels. The surface is
// reconfigured before the next acquire, never in the middle of a frame. A
// zero width or height pauses rendering until a non-zero size arrives.
func (d *Display) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == d.width && height == d.height && d.configured {
		return
	}
	d.width, d.height = width, height
	d.reconfigure = true
}

// configure applies the current size to the surface. Zero sizes leave the
// surface unconfigured.
func (d *Display) configure() error {
	if d.width == 0 || d.height == 0 {
		d.reconfigure = true
		return nil
	}
	d.config.Width = uint32(d.width)
	d.config.Height = uint32(d.height)
	if err := d.surface.Configure(d.device, &d.config); err != nil {
		return fmt.Errorf("display: configure surface %dx%d: %w", d.width, d.height, err)
	}
	d.configured = true
	d.reconfigure = false
	d.log.Debug("surface configured",
		"width", d.width,
		"height", d.height,
		"format", d.config.Format.String(),
		"present_mode", d.config.PresentMode.String())
	return nil
}

// transient reports whether err only costs the current frame.
func transient(err error) bool {
	return errors.Is(err, hal.ErrSurfaceLost) ||
		errors.Is(err, hal.ErrSurfaceOutdated) ||
		errors.Is(err, hal.ErrNotReady) ||
		errors.Is(err, hal.ErrTimeout)
}

// skip drops the current frame after a transient surface failure and
// schedules a reconfigure.
func (d *Display) skip(stage string, err error) error {
	d.skipped.Add(1)
	d.reconfigure = true
	d.log.Warn("frame skipped", "stage", stage, "err", err)
	return nil
}
