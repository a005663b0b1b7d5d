// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package text turns strings into gx images so they can be drawn like any
// other texture.
//
// A Face pairs a parsed font with a pixel size. Render shapes a string
// with HarfBuzz, rasterizes the glyph outlines and returns an image whose
// key identifies the size, color and string:
//
//	face, err := text.DefaultFace(32)
//	if err != nil {
//		log.Fatal(err)
//	}
//	label, err := face.Render("Hello, gx", gx.White)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r.DrawImage(gx.At(0, 0.8).WithScale(0.5, 0.5*label.Aspect()), label)
//
// Rendered labels are cached per Face, so calling Render every frame with
// the same arguments rasterizes once and returns the same *gx.Image. The
// cache has no eviction.
//
// The paragraph direction is taken from the first strongly directional
// character; right-to-left strings are shaped right-to-left as a whole.
// Mixed-direction reordering is not performed.
package text
