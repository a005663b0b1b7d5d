// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"errors"
	"image"

	"github.com/gogpu/gx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"
)

// padding keeps antialiased edges of the first and last glyph inside the
// image.
const padding = 1

// rasterizeLocked fills the glyph outlines into a w×h coverage mask with
// the baseline at the face's ascent. f.mu must be held.
func (f *Face) rasterizeLocked(glyphs []positioned, w, h int) (*image.Alpha, error) {
	r := vector.NewRasterizer(w, h)
	baseline := float32(f.ascent)

	for _, g := range glyphs {
		segs, err := f.outline.LoadGlyph(&f.buf, g.id, f.ppem, nil)
		if err != nil {
			if errors.Is(err, sfnt.ErrColoredGlyph) {
				continue
			}
			return nil, err
		}
		ox := float32(g.x) + padding
		oy := baseline - float32(g.y)
		open := false
		for _, seg := range segs {
			a := seg.Args
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					r.ClosePath()
				}
				r.MoveTo(ox+px(a[0].X), oy+px(a[0].Y))
				open = true
			case sfnt.SegmentOpLineTo:
				r.LineTo(ox+px(a[0].X), oy+px(a[0].Y))
			case sfnt.SegmentOpQuadTo:
				r.QuadTo(ox+px(a[0].X), oy+px(a[0].Y), ox+px(a[1].X), oy+px(a[1].Y))
			case sfnt.SegmentOpCubeTo:
				r.CubeTo(ox+px(a[0].X), oy+px(a[0].Y), ox+px(a[1].X), oy+px(a[1].Y), ox+px(a[2].X), oy+px(a[2].Y))
			}
		}
		if open {
			r.ClosePath()
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, nil
}

// colorize paints c through mask onto a transparent image.
func colorize(mask *image.Alpha, c gx.Color) *image.NRGBA {
	dst := image.NewNRGBA(mask.Bounds())
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c.Color()), image.Point{}, mask, image.Point{}, draw.Src)
	return dst
}

// px converts a 26.6 coordinate to pixels.
func px[T ~int32](v T) float32 {
	return float32(v) / 64
}
