// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/image/draw"
)

// ErrEmptyImage is returned for images with a zero or negative dimension.
var ErrEmptyImage = errors.New("gx: image has no pixels")

// Image is a decoded RGBA8 pixel buffer with a stable key.
//
// The key identifies the image to texture caches: two images with the same
// key are assumed to hold the same pixels, and only the first one seen is
// uploaded. Images are shared read-only once created.
type Image struct {
	// Key is the stable cache key: the cleaned absolute file path for
	// loaded images, "color:rrggbbaa" for solid images.
	Key string

	// Width and Height are the dimensions in pixels.
	Width, Height int

	// Pix holds straight-alpha RGBA8 rows, top to bottom, with a stride of
	// 4*Width bytes.
	Pix []uint8
}

// NewImage converts src into an Image identified by key.
func NewImage(key string, src image.Image) (*Image, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %q is %dx%d", ErrEmptyImage, key, b.Dx(), b.Dy())
	}

	dst, ok := src.(*image.NRGBA)
	if !ok || dst.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}

	return &Image{
		Key:    key,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    dst.Pix,
	}, nil
}

// SolidImage returns a 1×1 image of the given color. Solid images let
// untextured shapes share the texture-sampling path with images.
func SolidImage(c Color) *Image {
	p := c.RGBA8()
	return &Image{
		Key:    SolidKey(c),
		Width:  1,
		Height: 1,
		Pix:    []uint8{p[0], p[1], p[2], p[3]},
	}
}

// SolidKey returns the cache key of SolidImage(c). Colors that round to the
// same 8-bit value share a key.
func SolidKey(c Color) string {
	return "color:" + c.Hex()
}

// LoadImage decodes the image file at path. Supported formats are PNG,
// JPEG, GIF, BMP, TIFF and WebP. The image key is the cleaned absolute
// path, so loading the same file twice yields equal keys.
func LoadImage(path string) (*Image, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("gx: load image %q: %w", path, err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("gx: load image: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(abs, f)
	if err != nil {
		return nil, fmt.Errorf("gx: load image %q: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes an image from r and assigns it key.
func DecodeImage(key string, r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	img, err := NewImage(key, src)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return img, nil
}

// Scaled returns a copy of img resampled to w×h with bilinear filtering.
// The copy's key records the size so it caches separately from img.
func (img *Image) Scaled(w, h int) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: scale %q to %dx%d", ErrEmptyImage, img.Key, w, h)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img.NRGBA(), image.Rect(0, 0, img.Width, img.Height), draw.Src, nil)
	return &Image{
		Key:    fmt.Sprintf("%s@%dx%d", img.Key, w, h),
		Width:  w,
		Height: h,
		Pix:    dst.Pix,
	}, nil
}

// NRGBA returns a view of the pixels as an *image.NRGBA sharing Pix.
func (img *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: 4 * img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Stride returns the number of bytes per pixel row.
func (img *Image) Stride() int { return 4 * img.Width }

// Aspect returns Height/Width, the y scale that keeps the image's
// proportions when its x scale is 1.
func (img *Image) Aspect() float32 {
	if img.Width == 0 {
		return 1
	}
	return float32(img.Height) / float32(img.Width)
}
