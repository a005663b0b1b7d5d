// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
)

// positioned is a glyph at a pen position in pixels, y up from the
// baseline.
type positioned struct {
	id   sfnt.GlyphIndex
	x, y float64
}

type shapedRun struct {
	glyphs  []positioned
	advance float64
}

var english = language.NewLanguage("en")

// shapeLocked lays out runes on one line. f.mu must be held.
func (f *Face) shapeLocked(runes []rune) shapedRun {
	dir := direction(string(runes))
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      f.shape,
		Size:      f.ppem,
		Script:    script(runes),
		Language:  english,
	})

	run := shapedRun{glyphs: make([]positioned, 0, len(out.Glyphs))}
	var pen float64
	for _, g := range out.Glyphs {
		run.glyphs = append(run.glyphs, positioned{
			id: sfnt.GlyphIndex(g.GlyphID),
			x:  pen + fixedToFloat(g.XOffset),
			y:  fixedToFloat(g.YOffset),
		})
		pen += fixedToFloat(g.Advance)
	}
	run.advance = pen
	return run
}
