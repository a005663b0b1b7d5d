// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides the keyed, insert-once cache behind the display's
// texture and mesh caches.
//
// # Cache[K, V]
//
// A thread-safe map that never evicts. GetOrCreate runs the create callback
// under the cache lock, so each key is created at most once for the life of
// the cache even under concurrent callers:
//
//	c := cache.New[string, *Texture]()
//	tex, err := c.GetOrCreate("color:ff0000ff", func() (*Texture, error) {
//	    return upload(img)
//	})
//
// Memory grows with the number of distinct keys. Callers that own GPU
// resources release them with Drain when they are torn down.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
