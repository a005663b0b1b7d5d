// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// minBufferSize is the smallest allocation a Buffer makes.
const minBufferSize = 1024

// ErrBufferDestroyed is returned when writing to a destroyed buffer.
var ErrBufferDestroyed = errors.New("gpu: buffer has been destroyed")

// Buffer is a grow-only GPU buffer that is rewritten from the CPU once per
// frame. It reallocates (doubling) only when the data no longer fits, so the
// steady state is one WriteBuffer per frame and no allocations.
//
// Callers must make sure the GPU no longer reads the buffer before writing.
type Buffer struct {
	device hal.Device
	queue  hal.Queue
	label  string
	usage  gputypes.BufferUsage

	buf       hal.Buffer
	size      uint64
	gen       uint64
	destroyed bool
}

// NewBuffer returns an empty buffer. Nothing is allocated until the first
// Write.
func NewBuffer(device hal.Device, queue hal.Queue, label string, usage gputypes.BufferUsage) *Buffer {
	return &Buffer{
		device: device,
		queue:  queue,
		label:  label,
		usage:  usage | gputypes.BufferUsageCopyDst,
	}
}

// Write uploads data at offset 0, growing the buffer first if needed.
// Data is padded to a multiple of 4 bytes as WriteBuffer requires.
func (b *Buffer) Write(data []byte) error {
	if b.destroyed {
		return ErrBufferDestroyed
	}
	if len(data) == 0 {
		return nil
	}
	if pad := len(data) % 4; pad != 0 {
		data = append(data[:len(data):len(data)], make([]byte, 4-pad)...)
	}
	if err := b.ensure(uint64(len(data))); err != nil {
		return err
	}
	if err := b.queue.WriteBuffer(b.buf, 0, data); err != nil {
		return fmt.Errorf("write %s: %w", b.label, err)
	}
	return nil
}

func (b *Buffer) ensure(need uint64) error {
	if b.buf != nil && need <= b.size {
		return nil
	}
	size := b.size
	if size < minBufferSize {
		size = minBufferSize
	}
	for size < need {
		size *= 2
	}
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label,
		Size:  size,
		Usage: b.usage,
	})
	if err != nil {
		return fmt.Errorf("create %s (%d bytes): %w", b.label, size, err)
	}
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
	}
	b.buf = buf
	b.size = size
	b.gen++
	return nil
}

// Raw returns the underlying hal buffer, or nil before the first Write.
func (b *Buffer) Raw() hal.Buffer { return b.buf }

// Size returns the allocated size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Generation increases every time the buffer is reallocated. Bind groups
// that reference the buffer must be rebuilt when it changes.
func (b *Buffer) Generation() uint64 { return b.gen }

// Destroy releases the GPU buffer. It is safe to call more than once.
func (b *Buffer) Destroy() {
	if b == nil || b.destroyed {
		return
	}
	if b.buf != nil && b.device != nil {
		b.device.DestroyBuffer(b.buf)
	}
	b.buf = nil
	b.size = 0
	b.destroyed = true
}
