// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

// ImageRef is a reference to an image stored in an ImagePool.
// The zero value, NoImage, refers to no image.
type ImageRef uint32

// NoImage is the ImageRef of untextured commands.
const NoImage ImageRef = 0

// IsValid reports whether r refers to an image.
func (r ImageRef) IsValid() bool {
	return r != NoImage
}

// ImagePool is an arena of images addressed by ImageRef.
//
// Images are deduplicated by key: adding a second image with a key already
// in the pool returns the existing reference. The pool only grows; refs
// stay valid for the pool's lifetime, so commands can hold a ref instead
// of a pointer.
//
// ImagePool is not safe for concurrent use.
type ImagePool struct {
	images []*Image
	byKey  map[string]ImageRef
}

// NewImagePool creates an empty image pool.
func NewImagePool() *ImagePool {
	return &ImagePool{
		images: make([]*Image, 0, 8),
		byKey:  make(map[string]ImageRef, 8),
	}
}

// Add stores img and returns its reference. Adding nil returns NoImage.
func (p *ImagePool) Add(img *Image) ImageRef {
	if img == nil {
		return NoImage
	}
	if ref, ok := p.byKey[img.Key]; ok {
		return ref
	}
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	ref := ImageRef(uint32(len(p.images)))
	p.byKey[img.Key] = ref
	return ref
}

// Get returns the image for ref, or nil if ref is NoImage or unknown.
func (p *ImagePool) Get(ref ImageRef) *Image {
	if p == nil || ref == NoImage || int(ref) > len(p.images) {
		return nil
	}
	return p.images[ref-1]
}

// Lookup returns the reference stored under key.
func (p *ImagePool) Lookup(key string) (ImageRef, bool) {
	ref, ok := p.byKey[key]
	return ref, ok
}

// Len returns the number of images in the pool.
func (p *ImagePool) Len() int {
	return len(p.images)
}
