// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gx"
	"github.com/gogpu/gx/app"
	"github.com/gogpu/gx/text"
)

// scene is one demo screen.
type scene interface {
	name() string
	init(ctx *app.Context) error
	update(dt float64)
	draw(r *gx.Renderer)
}

type demo struct {
	app.BaseHandler
	ctx     *app.Context
	log     *slog.Logger
	scenes  []scene
	current int
}

func newDemo(first, imagePath string) (*demo, error) {
	d := &demo{
		scenes: []scene{
			&shapesScene{},
			&clockScene{now: time.Now},
			&imageScene{path: imagePath},
			&textScene{},
		},
	}
	names := make([]string, 0, len(d.scenes))
	for i, s := range d.scenes {
		if s.name() == first {
			d.current = i
			return d, nil
		}
		names = append(names, s.name())
	}
	return nil, fmt.Errorf("unknown scene %q (have %s)", first, strings.Join(names, ", "))
}

func (d *demo) Init(ctx *app.Context) error {
	d.ctx = ctx
	d.log = ctx.Logger()
	for _, s := range d.scenes {
		if err := s.init(ctx); err != nil {
			return fmt.Errorf("scene %s: %w", s.name(), err)
		}
	}
	d.log.Info("scene", "name", d.scenes[d.current].name())
	return nil
}

func (d *demo) Update(dt float64) { d.scenes[d.current].update(dt) }

func (d *demo) Draw(r *gx.Renderer) { d.scenes[d.current].draw(r) }

func (d *demo) Event(e app.Event) {
	k, ok := e.(app.KeyEvent)
	if !ok || !k.Pressed || k.Repeat {
		return
	}
	switch k.Key {
	case gpucontext.KeyEscape:
		d.ctx.Quit()
	case gpucontext.KeySpace:
		d.current = (d.current + 1) % len(d.scenes)
		d.log.Info("scene", "name", d.scenes[d.current].name())
	}
}

// xscale keeps shapes round on non-square windows.
func xscale(ctx *app.Context) float32 {
	return 1 / ctx.Aspect()
}

// shapesScene spins every built-in shape.
type shapesScene struct {
	ctx  *app.Context
	t    float32
	star *gx.Mesh
}

func (s *shapesScene) name() string { return "shapes" }

func (s *shapesScene) init(ctx *app.Context) error {
	s.ctx = ctx
	points := make([]gx.Vec2, 0, 10)
	for i := range 10 {
		radius := float32(1)
		if i%2 == 1 {
			radius = 0.45
		}
		angle := float64(i)*math.Pi/5 + math.Pi/2
		points = append(points, gx.V2(radius*float32(math.Cos(angle)), radius*float32(math.Sin(angle))))
	}
	// Triangulate once; every frame reuses the mesh.
	star, err := gx.Polygon(points)
	if err != nil {
		return err
	}
	s.star = star
	return nil
}

func (s *shapesScene) update(dt float64) { s.t += float32(dt) }

func (s *shapesScene) draw(r *gx.Renderer) {
	sx := xscale(s.ctx)
	r.SetBackground(gx.Hex("#101018")).
		DrawTriangle(gx.At(-0.6, 0.45).WithScale(0.2*sx, 0.2).WithRotation(s.t), gx.Red).
		DrawRectangle(gx.At(0, 0.45).WithScale(0.35*sx, 0.35).WithRotation(-s.t/2), gx.Green).
		DrawCircle(gx.At(0.6, 0.45).WithScale(sx, 1), 0.18, 48, gx.Blue).
		DrawMesh(s.star, gx.At(-0.5, -0.45).WithScale(0.25*sx, 0.25).WithRotation(s.t/3), gx.Yellow)

	center := gx.V2(0.45, -0.45)
	for i := range 12 {
		angle := s.t + float32(i)*math.Pi/6
		tip := gx.V2(0.3*sx*float32(math.Cos(float64(angle))), 0.3*float32(math.Sin(float64(angle))))
		c := gx.Cyan.Lerp(gx.Magenta, float32(i)/11)
		r.DrawLine(center, center.Add(tip), 0.01, c)
	}
}

// clockScene draws an analog clock for the local time.
type clockScene struct {
	ctx *app.Context
	now func() time.Time
}

func (s *clockScene) name() string { return "clock" }

func (s *clockScene) init(ctx *app.Context) error {
	s.ctx = ctx
	return nil
}

func (s *clockScene) update(float64) {}

func (s *clockScene) draw(r *gx.Renderer) {
	sx := xscale(s.ctx)
	face := gx.At(0, 0).WithScale(sx, 1)
	r.SetBackground(gx.Hex("#203040")).
		DrawCircle(face, 0.85, 96, gx.Hex("#d0d0d0")).
		DrawCircle(face, 0.8, 96, gx.White)

	hand := func(turns, length, width float32, c gx.Color) {
		// Zero turns points at twelve; hands go clockwise.
		angle := float64(math.Pi/2 - 2*math.Pi*float64(turns))
		tip := gx.V2(length*sx*float32(math.Cos(angle)), length*float32(math.Sin(angle)))
		r.DrawLine(gx.V2(0, 0), tip, width, c)
	}
	for i := range 12 {
		angle := float64(i) * math.Pi / 6
		dir := gx.V2(sx*float32(math.Cos(angle)), float32(math.Sin(angle)))
		r.DrawLine(dir.Mul(0.7), dir.Mul(0.78), 0.02, gx.Black)
	}

	t := s.now()
	sec := float32(t.Second()) + float32(t.Nanosecond())/1e9
	minute := float32(t.Minute()) + sec/60
	hour := float32(t.Hour()%12) + minute/60
	hand(hour/12, 0.45, 0.04, gx.Black)
	hand(minute/60, 0.65, 0.025, gx.Black)
	hand(sec/60, 0.7, 0.01, gx.Red)
	r.DrawCircle(face, 0.03, 24, gx.Red)
}

// imageScene bounces an image around the window.
type imageScene struct {
	ctx  *app.Context
	path string
	img  *gx.Image
	pos  gx.Vec2
	vel  gx.Vec2
	spin float32
}

const spriteSize = 0.4

func (s *imageScene) name() string { return "image" }

func (s *imageScene) init(ctx *app.Context) error {
	s.ctx = ctx
	s.vel = gx.V2(0.5, 0.35)
	if s.path != "" {
		img, err := ctx.LoadImage(s.path)
		if err != nil {
			return err
		}
		s.img = img
		return nil
	}
	img, err := gx.NewImage("gxdemo:checker", checkerboard(64, 8))
	if err != nil {
		return err
	}
	s.img = img
	return nil
}

func (s *imageScene) update(dt float64) {
	s.pos = s.pos.Add(s.vel.Mul(float32(dt)))
	s.spin += float32(dt)
	limit := gx.V2(1-spriteSize/2*xscale(s.ctx), 1-spriteSize/2*s.img.Aspect())
	if s.pos.X > limit.X || s.pos.X < -limit.X {
		s.vel.X = -s.vel.X
		s.pos.X = max(-limit.X, min(limit.X, s.pos.X))
	}
	if s.pos.Y > limit.Y || s.pos.Y < -limit.Y {
		s.vel.Y = -s.vel.Y
		s.pos.Y = max(-limit.Y, min(limit.Y, s.pos.Y))
	}
}

func (s *imageScene) draw(r *gx.Renderer) {
	sx := xscale(s.ctx)
	size := gx.V2(spriteSize*sx, spriteSize*s.img.Aspect())
	r.SetBackground(gx.Hex("#302020")).
		DrawImageTinted(gx.At(-s.pos.X, -s.pos.Y).WithScale(size.X/2, size.Y/2).WithRotation(s.spin), s.img, gx.RGBA(1, 1, 1, 0.5)).
		DrawImage(gx.At(s.pos.X, s.pos.Y).WithScale(size.X, size.Y), s.img)
}

// checkerboard returns a size×size image of cell-pixel squares.
func checkerboard(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 240, G: 200, B: 80, A: 255}
	dark := color.NRGBA{R: 60, G: 40, B: 120, A: 255}
	for y := range size {
		for x := range size {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// textScene shows shaped text labels and a frame rate counter. The
// counter changes once a second so the label cache stays small.
type textScene struct {
	ctx   *app.Context
	title *text.Face
	body  *text.Face

	frames  int
	elapsed float64
	fps     int
}

func (s *textScene) name() string { return "text" }

func (s *textScene) init(ctx *app.Context) error {
	s.ctx = ctx
	var err error
	if s.title, err = text.DefaultFace(64); err != nil {
		return err
	}
	s.body, err = text.DefaultFace(24)
	return err
}

func (s *textScene) update(dt float64) {
	s.frames++
	s.elapsed += dt
	if s.elapsed >= 1 {
		s.fps = int(math.Round(float64(s.frames) / s.elapsed))
		s.frames, s.elapsed = 0, 0
	}
}

func (s *textScene) draw(r *gx.Renderer) {
	r.SetBackground(gx.Hex("#f4f0e8"))
	s.label(r, s.title, "gx", 0, 0.4, gx.Hex("#c03030"))
	s.label(r, s.body, "Every label is one textured rectangle.", 0, 0, gx.Black)
	s.label(r, s.body, fmt.Sprintf("%d fps", s.fps), 0, -0.4, gx.Hex("#305080"))
}

// label draws str centered at (x, y) at its native pixel size.
func (s *textScene) label(r *gx.Renderer, f *text.Face, str string, x, y float32, c gx.Color) {
	img, err := f.Render(str, c)
	if err != nil {
		s.ctx.Logger().Warn("label", "text", str, "err", err)
		return
	}
	w, h := s.ctx.Size()
	if w == 0 || h == 0 {
		return
	}
	// Normalized device space spans 2 units across the window.
	sw := 2 * float32(img.Width) / float32(w)
	sh := 2 * float32(img.Height) / float32(h)
	r.DrawImage(gx.At(x, y).WithScale(sw, sh), img)
}
