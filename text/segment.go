// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// direction returns the paragraph direction of s: the direction of its
// first strongly directional run, or left-to-right when there is none.
func direction(s string) di.Direction {
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return di.DirectionLTR
	}
	order, err := p.Order()
	if err != nil {
		return di.DirectionLTR
	}
	for i := range order.NumRuns() {
		run := order.Run(i)
		switch run.Direction() {
		case bidi.RightToLeft:
			return di.DirectionRTL
		case bidi.LeftToRight:
			if hasStrong(run.String()) {
				return di.DirectionLTR
			}
		}
	}
	return di.DirectionLTR
}

// hasStrong reports whether s has a letter, which distinguishes a real
// left-to-right run from digits and punctuation resolved to the default.
func hasStrong(s string) bool {
	for _, r := range s {
		if language.LookupScript(r) != language.Common {
			return true
		}
	}
	return false
}

// script returns the script of the first rune that has one.
func script(runes []rune) language.Script {
	for _, r := range runes {
		if s := language.LookupScript(r); s != language.Common && s != language.Inherited {
			return s
		}
	}
	return language.Latin
}
