// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

import "testing"

func TestImagePool(t *testing.T) {
	p := NewImagePool()

	if ref := p.Add(nil); ref != NoImage {
		t.Errorf("Add(nil) = %d, want NoImage", ref)
	}
	if p.Get(NoImage) != nil {
		t.Error("Get(NoImage) should be nil")
	}

	red := SolidImage(Red)
	blue := SolidImage(Blue)

	r1 := p.Add(red)
	b1 := p.Add(blue)
	if !r1.IsValid() || !b1.IsValid() || r1 == b1 {
		t.Fatalf("refs = %d, %d", r1, b1)
	}
	if p.Get(r1) != red || p.Get(b1) != blue {
		t.Error("Get returned the wrong image")
	}

	// Same key returns the existing ref and keeps the first image.
	r2 := p.Add(SolidImage(Red))
	if r2 != r1 || p.Get(r2) != red {
		t.Errorf("re-adding key: ref %d (want %d)", r2, r1)
	}
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}

	if ref, ok := p.Lookup(blue.Key); !ok || ref != b1 {
		t.Errorf("Lookup = %d, %v", ref, ok)
	}
	if p.Get(ImageRef(99)) != nil {
		t.Error("Get(unknown) should be nil")
	}

	var nilPool *ImagePool
	if nilPool.Get(1) != nil {
		t.Error("nil pool Get should be nil")
	}
}
