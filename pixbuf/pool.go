// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// DefaultFormat is the pixel format used when a caller passes the
// zero format value.
const DefaultFormat = gputypes.TextureFormatBGRA8Unorm

// maxRetainedPerKey bounds how many released buffers the pool keeps
// for one (width, height, format) key. Two covers the common
// front/back buffer pattern.
const maxRetainedPerKey = 2

// Buffer is one pooled pixel buffer.
type Buffer struct {
	format gputypes.TextureFormat
	img    *image.RGBA
}

// Format returns the wire format the buffer was allocated for.
func (b *Buffer) Format() gputypes.TextureFormat {
	return b.format
}

// RGBA returns the backing image. The caller may draw into it freely
// until the buffer is released back to the pool.
func (b *Buffer) RGBA() *image.RGBA {
	return b.img
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.img.Rect.Dy()
}

type poolKey struct {
	width, height int
	format        gputypes.TextureFormat
}

// Pool allocates and recycles Buffers.
//
// Acquire returns a recycled buffer when one of the right size and
// format is free, otherwise it allocates. Release returns a buffer
// for reuse; at most a couple of buffers are retained per size so a
// resize storm cannot pin unbounded memory.
//
// The zero Pool is not usable; call NewPool.
type Pool struct {
	mu   sync.Mutex
	free map[poolKey][]*Buffer
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{free: make(map[poolKey][]*Buffer)}
}

// Acquire returns a buffer of at least 1x1 pixels in the given
// format. A zero format selects DefaultFormat. The returned buffer's
// contents are unspecified.
func (p *Pool) Acquire(width, height int, format gputypes.TextureFormat) *Buffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if format == 0 {
		format = DefaultFormat
	}

	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	if bufs := p.free[key]; len(bufs) > 0 {
		b := bufs[len(bufs)-1]
		p.free[key] = bufs[:len(bufs)-1]
		p.mu.Unlock()
		return b
	}
	p.mu.Unlock()

	return &Buffer{
		format: format,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Release returns b to the pool. Releasing nil is a no-op. The caller
// must not use b afterwards.
func (p *Pool) Release(b *Buffer) {
	if b == nil {
		return
	}

	key := poolKey{width: b.Width(), height: b.Height(), format: b.format}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free[key]) < maxRetainedPerKey {
		p.free[key] = append(p.free[key], b)
	}
}

// Resize returns a buffer of the new size in old's format with old's
// contents scaled into it, and releases old back to the pool. A nil
// old behaves like Acquire with the default format.
//
// The scale keeps the last rendered frame visible while the renderer
// catches up with a resize, instead of flashing an empty buffer.
func (p *Pool) Resize(old *Buffer, width, height int) *Buffer {
	if old == nil {
		return p.Acquire(width, height, 0)
	}

	next := p.Acquire(width, height, old.format)
	xdraw.ApproxBiLinear.Scale(next.img, next.img.Rect, old.img, old.img.Rect, xdraw.Src, nil)
	p.Release(old)
	return next
}
