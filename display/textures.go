// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package display

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/internal/cache"
	"github.com/gogpu/gx/internal/gpu"
	"github.com/gogpu/wgpu/hal"
)

// textureEntry is one cached upload. The image is kept so the texture can be
// rewritten after a device reset.
type textureEntry struct {
	tex   *gpu.Texture
	image *gx.Image
}

// textureCache maps image keys to uploaded textures. Entries live until the
// Display is destroyed.
type textureCache struct {
	device   hal.Device
	queue    hal.Queue
	pipeline *gpu.SpritePipeline
	log      *slog.Logger

	entries   *cache.Cache[string, *textureEntry]
	reuploads atomic.Uint64
}

func newTextureCache(device hal.Device, queue hal.Queue, p *gpu.SpritePipeline, log *slog.Logger) *textureCache {
	return &textureCache{
		device:   device,
		queue:    queue,
		pipeline: p,
		log:      log,
		entries:  cache.New[string, *textureEntry](),
	}
}

// resolve returns the texture for img, uploading it on first use.
func (c *textureCache) resolve(img *gx.Image) (*gpu.Texture, error) {
	return c.lookup(img.Key, func() *gx.Image { return img })
}

// resolveSolid returns the 1×1 texture for col.
func (c *textureCache) resolveSolid(col gx.Color) (*gpu.Texture, error) {
	return c.lookup(gx.SolidKey(col), func() *gx.Image { return gx.SolidImage(col) })
}

// lookup returns the cached texture for key or uploads the image returned by
// load. The insert is serialized by the cache lock, so a key is uploaded at
// most once.
func (c *textureCache) lookup(key string, load func() *gx.Image) (*gpu.Texture, error) {
	e, created, err := c.entries.GetOrCreate(key, func() (*textureEntry, error) {
		img := load()
		tex, err := gpu.NewTexture(c.device, c.queue, c.pipeline, key, img.Width, img.Height, img.Pix)
		if err != nil {
			return nil, err
		}
		return &textureEntry{tex: tex, image: img}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("display: resolve texture %q: %w", key, err)
	}
	if created {
		c.log.Debug("texture uploaded", "key", key, "width", e.image.Width, "height", e.image.Height)
	}
	return e.tex, nil
}

// reupload rewrites every cached texture from its CPU pixels.
func (c *textureCache) reupload() error {
	var firstErr error
	c.entries.Range(func(key string, e *textureEntry) bool {
		if err := e.tex.Write(c.queue, e.image.Pix); err != nil {
			firstErr = fmt.Errorf("display: reupload %q: %w", key, err)
			return false
		}
		c.reuploads.Add(1)
		return true
	})
	return firstErr
}

func (c *textureCache) len() int { return c.entries.Len() }

func (c *textureCache) stats() cache.Stats { return c.entries.Stats() }

// destroy releases every texture, most recently uploaded first.
func (c *textureCache) destroy() {
	for _, e := range c.entries.Drain() {
		e.tex.Destroy(c.device)
	}
}
