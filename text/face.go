// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/gx"
	"github.com/gogpu/gx/internal/cache"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is a font at a fixed pixel size. It is safe for concurrent use.
type Face struct {
	id      string
	size    float64
	ppem    fixed.Int26_6
	outline *opentype.Font
	ascent  float64
	descent float64
	height  float64

	// mu guards the shaping face, the shaper and the sfnt buffer, none of
	// which are safe for concurrent use.
	mu     sync.Mutex
	shape  *font.Face
	shaper shaping.HarfbuzzShaper
	buf    sfnt.Buffer

	labels *cache.Cache[string, *gx.Image]
}

// NewFace parses a TrueType or OpenType font and returns a Face of size
// pixels per em.
func NewFace(ttf []byte, size float64) (*Face, error) {
	if len(ttf) == 0 {
		return nil, ErrEmptyFontData
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	shape, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}
	outline, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: parse font outlines: %w", err)
	}

	sum := fnv.New64a()
	sum.Write(ttf)
	f := &Face{
		id:      strconv.FormatUint(sum.Sum64(), 16),
		size:    size,
		ppem:    fixed.Int26_6(math.Round(size * 64)),
		outline: outline,
		shape:   shape,
		labels:  cache.New[string, *gx.Image](),
	}
	m, err := outline.Metrics(&f.buf, f.ppem, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("text: font metrics: %w", err)
	}
	f.ascent = fixedToFloat(m.Ascent)
	f.descent = fixedToFloat(m.Descent)
	f.height = fixedToFloat(m.Height)
	return f, nil
}

// DefaultFace returns Go Regular at size pixels per em.
func DefaultFace(size float64) (*Face, error) {
	return NewFace(goregular.TTF, size)
}

// Size returns the size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Ascent returns the distance from the top of a line to the baseline in
// pixels.
func (f *Face) Ascent() float64 { return f.ascent }

// Descent returns the distance from the baseline to the bottom of a line
// in pixels.
func (f *Face) Descent() float64 { return f.descent }

// LineHeight returns the recommended baseline-to-baseline distance.
func (f *Face) LineHeight() float64 { return f.height }

// Key returns the image key Render assigns to s drawn in c:
// "text:<font>:<size>:<rrggbbaa>:<s>", where font is a hash of the font
// data, so faces built from the same bytes share labels.
func (f *Face) Key(s string, c gx.Color) string {
	return "text:" + f.id + ":" + strconv.FormatFloat(f.size, 'g', -1, 64) + ":" + c.Hex() + ":" + s
}

// Render returns s drawn in c on a transparent background. The image is
// one line tall (ascent plus descent) and as wide as the shaped advance
// plus a pixel of padding on each side.
func (f *Face) Render(s string, c gx.Color) (*gx.Image, error) {
	if s == "" {
		return nil, ErrEmptyText
	}
	key := f.Key(s, c)
	img, _, err := f.labels.GetOrCreate(key, func() (*gx.Image, error) {
		return f.render(key, s, c)
	})
	return img, err
}

// Stats reports the label cache counters.
func (f *Face) Stats() cache.Stats {
	return f.labels.Stats()
}

func (f *Face) render(key, s string, c gx.Color) (*gx.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	run := f.shapeLocked([]rune(s))
	w := int(math.Ceil(run.advance)) + 2*padding
	h := max(int(math.Ceil(f.ascent+f.descent)), 1)

	mask, err := f.rasterizeLocked(run.glyphs, w, h)
	if err != nil {
		return nil, fmt.Errorf("text: render %q: %w", s, err)
	}
	img, err := gx.NewImage(key, colorize(mask, c))
	if err != nil {
		return nil, fmt.Errorf("text: render %q: %w", s, err)
	}
	return img, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
