// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package display

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gx"
)

func TestNewHostedNilDevice(t *testing.T) {
	if _, err := NewHosted(nil, nil, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewHosted(nil, nil) err = %v, want ErrNilDevice", err)
	}
}

func TestRenderToView(t *testing.T) {
	d, dev, queue, view := newHostedTestDisplay(t)

	r := gx.NewRenderer()
	r.DrawTriangle(gx.At(0, 0), gx.Red)
	r.DrawRectangle(gx.At(0.5, 0.5), gx.Blue)
	if err := d.RenderTo(r.Frame(), view, 64, 32); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}

	pass := dev.lastPass()
	if len(pass.indices) != 2 || !pass.ended {
		t.Errorf("draws = %v, ended = %v; want 2 draws in an ended pass", pass.indices, pass.ended)
	}
	if queue.submits != 1 || queue.presents != 0 {
		t.Errorf("submits = %d, presents = %d; want 1, 0", queue.submits, queue.presents)
	}
	if w, h := d.Size(); w != 64 || h != 32 {
		t.Errorf("Size() = %dx%d, want 64x32", w, h)
	}
	if s := d.Stats(); s.Frames != 1 || s.Draws != 2 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestRenderToSkipsMissingTarget(t *testing.T) {
	d, dev, _, view := newHostedTestDisplay(t)

	r := gx.NewRenderer()
	r.DrawTriangle(gx.At(0, 0), gx.Red)
	if err := d.RenderTo(r.Frame(), nil, 64, 32); err != nil {
		t.Fatalf("RenderTo(nil view): %v", err)
	}
	if err := d.RenderTo(r.Frame(), view, 0, 32); err != nil {
		t.Fatalf("RenderTo(zero width): %v", err)
	}
	if len(dev.passes) != 0 {
		t.Errorf("recorded %d passes for skipped frames", len(dev.passes))
	}
	if s := d.Stats(); s.Skipped != 2 || s.Frames != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestHostedRenderNeedsSurface(t *testing.T) {
	d, _, _, _ := newHostedTestDisplay(t)

	r := gx.NewRenderer()
	if err := d.Render(r.Frame()); !errors.Is(err, ErrNoSurface) {
		t.Errorf("Render err = %v, want ErrNoSurface", err)
	}
}

func TestHostedDestroyKeepsDevice(t *testing.T) {
	d, _, _, view := newHostedTestDisplay(t)

	d.Destroy()
	r := gx.NewRenderer()
	if err := d.RenderTo(r.Frame(), view, 64, 32); !errors.Is(err, ErrDestroyed) {
		t.Errorf("RenderTo after Destroy err = %v, want ErrDestroyed", err)
	}
	if d.ownsDevice {
		t.Error("hosted display claims ownership of the device")
	}
}
