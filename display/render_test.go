// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package display

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gx"
	"github.com/gogpu/wgpu/hal"
)

func checkerImage(t *testing.T, key string) *gx.Image {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 255})
	img, err := gx.NewImage(key, src)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRenderSingleTriangle(t *testing.T) {
	d, inst := newTestDisplay(t, 320, 240)

	r := gx.NewRenderer()
	r.DrawTriangle(gx.At(0, 0), gx.Red)
	if err := d.Render(r.Frame()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	pass := inst.device.lastPass()
	if len(pass.indices) != 1 || pass.indices[0] != 3 {
		t.Errorf("draws = %v, want one draw of 3 indices", pass.indices)
	}
	if !pass.ended {
		t.Error("render pass not ended")
	}
	if inst.queue.submits != 1 || inst.queue.presents != 1 {
		t.Errorf("submits = %d, presents = %d; want 1, 1", inst.queue.submits, inst.queue.presents)
	}
	if !d.textures.entries.Contains(gx.SolidKey(gx.Red)) {
		t.Error("red 1×1 texture not cached")
	}
	s := d.Stats()
	if s.Frames != 1 || s.Draws != 1 || s.Textures != 1 || s.Uploads != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestRenderCircle(t *testing.T) {
	d, inst := newTestDisplay(t, 320, 240)

	r := gx.NewRenderer()
	r.DrawCircle(gx.At(0, 0), 1, 8, gx.Blue)
	if err := d.Render(r.Frame()); err != nil {
		t.Fatal(err)
	}
	if got := inst.device.lastPass().indices; len(got) != 1 || got[0] != 24 {
		t.Errorf("draws = %v, want one draw of 24 indices", got)
	}
}

func TestRenderKeepsCommandOrder(t *testing.T) {
	d, inst := newTestDisplay(t, 320, 240)

	r := gx.NewRenderer()
	r.DrawTriangle(gx.At(0, 0), gx.Red).
		DrawRectangle(gx.At(0.5, 0.5), gx.Green).
		DrawCircle(gx.At(-0.5, 0), 0.2, 8, gx.Blue).
		DrawTriangle(gx.At(0, 0.5), gx.Red)
	if err := d.Render(r.Frame()); err != nil {
		t.Fatal(err)
	}

	want := []uint32{3, 6, 24, 3}
	got := inst.device.lastPass().indices
	if len(got) != len(want) {
		t.Fatalf("draws = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw %d: %d indices, want %d", i, got[i], want[i])
		}
	}
	if s := d.Stats(); s.Textures != 3 {
		t.Errorf("Textures = %d, want 3 (one per distinct color)", s.Textures)
	}
}

func TestRenderClearsToBackground(t *testing.T) {
	d, inst := newTestDisplay(t, 64, 64)

	r := gx.NewRenderer()
	r.SetBackground(gx.RGBA(0.25, 0.5, 0.75, 1))
	if err := d.Render(r.Frame()); err != nil {
		t.Fatal(err)
	}
	pass := inst.device.lastPass()
	if pass.loadOp != gputypes.LoadOpClear {
		t.Errorf("load op = %v, want clear", pass.loadOp)
	}
	want := gputypes.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}
	if pass.clear != want {
		t.Errorf("clear = %+v, want %+v", pass.clear, want)
	}
	if len(pass.indices) != 0 {
		t.Errorf("empty frame drew %d times", len(pass.indices))
	}
}

func TestRenderImageUploadedOnce(t *testing.T) {
	d, inst := newTestDisplay(t, 64, 64)
	img := checkerImage(t, "/assets/checker.png")

	r := gx.NewRenderer()
	for range 2 {
		r.DrawImage(gx.At(0, 0), img)
		if err := d.Render(r.Frame()); err != nil {
			t.Fatal(err)
		}
		r.EndFrame()
	}

	if inst.queue.textureWrites != 1 {
		t.Errorf("WriteTexture called %d times, want 1", inst.queue.textureWrites)
	}
	s := d.Stats()
	if s.Uploads != 1 || s.TextureHits != 1 || s.TextureMisses != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestRenderSameFileUploadedOnce(t *testing.T) {
	d, inst := newTestDisplay(t, 64, 64)

	path := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 2, color.NRGBA{G: 255, A: 255})
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	// Each frame loads its own *Image and records through its own Renderer.
	for range 2 {
		img, err := gx.LoadImage(path)
		if err != nil {
			t.Fatalf("LoadImage: %v", err)
		}
		r := gx.NewRenderer()
		r.DrawImage(gx.At(0, 0), img)
		if err := d.Render(r.Frame()); err != nil {
			t.Fatal(err)
		}
	}

	if inst.queue.textureWrites != 1 {
		t.Errorf("WriteTexture called %d times, want 1", inst.queue.textureWrites)
	}
	if s := d.Stats(); s.TextureHits != 1 || s.TextureMisses != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestResolveSameKeyOneUpload(t *testing.T) {
	d, inst := newTestDisplay(t, 64, 64)
	img := checkerImage(t, "sprite")

	first, err := d.textures.resolve(img)
	if err != nil {
		t.Fatal(err)
	}
	for range 9 {
		tex, err := d.textures.resolve(img)
		if err != nil {
			t.Fatal(err)
		}
		if tex != first {
			t.Fatal("resolve returned a different texture for the same key")
		}
	}
	if inst.queue.textureWrites != 1 {
		t.Errorf("WriteTexture called %d times, want 1", inst.queue.textureWrites)
	}
}

func TestResizeAppliedBeforeNextRender(t *testing.T) {
	d, inst := newTestDisplay(t, 800, 600)

	d.Resize(1024, 768)
	if len(inst.surface.configs) != 1 {
		t.Fatal("Resize reconfigured the surface immediately")
	}
	if w, h := d.Size(); w != 1024 || h != 768 {
		t.Errorf("Size() = %dx%d, want 1024x768", w, h)
	}

	r := gx.NewRenderer()
	r.DrawRectangle(gx.At(0, 0), gx.Green)
	if err := d.Render(r.Frame()); err != nil {
		t.Fatal(err)
	}
	cfg := inst.surface.lastConfig()
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("surface configured %dx%d, want 1024x768", cfg.Width, cfg.Height)
	}

	// Same size again: nothing to do.
	d.Resize(1024, 768)
	if err := d.Render(r.Frame()); err != nil {
		t.Fatal(err)
	}
	if len(inst.surface.configs) != 2 {
		t.Errorf("surface configured %d times, want 2", len(inst.surface.configs))
	}
}

func TestRenderZeroSizeSkips(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d, inst := newTestDisplay(t, 800, 600, WithLogger(logger))

	d.Resize(0, 0)
	r := gx.NewRenderer()
	r.DrawTriangle(gx.At(0, 0), gx.Red)
	if err := d.Render(r.Frame()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if inst.surface.acquires != 0 {
		t.Error("acquired a texture for a zero-sized surface")
	}
	if s := d.Stats(); s.Skipped != 1 || s.Frames != 0 {
		t.Errorf("Stats() = %+v", s)
	}
	if out := logs.String(); !strings.Contains(out, "frame skipped") || !strings.Contains(out, "stage=size") {
		t.Errorf("zero-size skip not logged:\n%s", out)
	}

	d.Resize(640, 480)
	if err := d.Render(r.Frame()); err != nil {
		t.Fatal(err)
	}
	if s := d.Stats(); s.Frames != 1 {
		t.Errorf("Frames = %d after restoring size", s.Frames)
	}
}

func TestRenderSkipsTransientAcquireFailures(t *testing.T) {
	for _, acquireErr := range []error{hal.ErrSurfaceLost, hal.ErrSurfaceOutdated, hal.ErrNotReady, hal.ErrTimeout} {
		t.Run(acquireErr.Error(), func(t *testing.T) {
			d, inst := newTestDisplay(t, 100, 100)
			inst.surface.acquireErrs = []error{acquireErr}

			r := gx.NewRenderer()
			r.DrawTriangle(gx.At(0, 0), gx.Red)
			if err := d.Render(r.Frame()); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if inst.queue.submits != 0 {
				t.Error("skipped frame was submitted")
			}
			if s := d.Stats(); s.Skipped != 1 {
				t.Errorf("Skipped = %d, want 1", s.Skipped)
			}

			configs := len(inst.surface.configs)
			if err := d.Render(r.Frame()); err != nil {
				t.Fatalf("second Render: %v", err)
			}
			if len(inst.surface.configs) != configs+1 {
				t.Error("surface not reconfigured after skipped frame")
			}
			if inst.queue.presents != 1 {
				t.Errorf("presents = %d, want 1", inst.queue.presents)
			}
		})
	}
}

func TestRenderDeviceLostIsFatal(t *testing.T) {
	d, inst := newTestDisplay(t, 100, 100)
	inst.surface.acquireErrs = []error{hal.ErrDeviceLost}

	r := gx.NewRenderer()
	err := d.Render(r.Frame())
	if !errors.Is(err, hal.ErrDeviceLost) {
		t.Errorf("err = %v, want ErrDeviceLost", err)
	}
}

func TestRenderPresentOutdatedSkips(t *testing.T) {
	d, inst := newTestDisplay(t, 100, 100)
	inst.queue.presentErr = hal.ErrSurfaceOutdated

	r := gx.NewRenderer()
	r.DrawTriangle(gx.At(0, 0), gx.Red)
	if err := d.Render(r.Frame()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if s := d.Stats(); s.Skipped != 1 || s.Frames != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestRenderInvalidCommands(t *testing.T) {
	d, inst := newTestDisplay(t, 100, 100)

	tests := []struct {
		name  string
		frame gx.Frame
		want  error
	}{
		{
			name:  "unknown image",
			frame: gx.Frame{Commands: []gx.DrawCommand{{Mesh: gx.Rectangle(), Image: 7, Color: gx.None}}},
			want:  ErrUnknownImage,
		},
		{
			name:  "nil mesh",
			frame: gx.Frame{Commands: []gx.DrawCommand{{Color: gx.Red}}},
			want:  ErrNilMesh,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discards := inst.surface.discards
			if err := d.Render(tt.frame); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if inst.surface.discards != discards+1 {
				t.Error("surface texture not discarded")
			}
		})
	}
}

func TestReupload(t *testing.T) {
	d, inst := newTestDisplay(t, 64, 64)

	r := gx.NewRenderer()
	r.DrawImage(gx.At(0, 0), checkerImage(t, "a")).
		DrawImage(gx.At(0, 0), checkerImage(t, "b"))
	if err := d.Render(r.Frame()); err != nil {
		t.Fatal(err)
	}
	before := inst.queue.textureWrites

	if err := d.Reupload(); err != nil {
		t.Fatalf("Reupload: %v", err)
	}
	if got := inst.queue.textureWrites - before; got != 2 {
		t.Errorf("Reupload wrote %d textures, want 2", got)
	}
	if s := d.Stats(); s.Uploads != 4 {
		t.Errorf("Uploads = %d, want 4", s.Uploads)
	}
}
