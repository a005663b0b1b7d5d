// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import "errors"

var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for non-positive or non-finite sizes.
	ErrInvalidSize = errors.New("text: invalid face size")

	// ErrEmptyText is returned by Render for the empty string.
	ErrEmptyText = errors.New("text: empty string")
)
