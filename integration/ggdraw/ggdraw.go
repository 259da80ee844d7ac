// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

// Package ggdraw renders wayapp surfaces with the gg 2D graphics
// library. A Canvas owns a gg.Context sized to the surface buffer and
// calls a user draw function whenever the surface needs new pixels.
package ggdraw

import (
	"image"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/Ciantic/wayapp"
	"github.com/Ciantic/wayapp/pixbuf"
)

// DrawFunc paints one frame. The context is already sized to the
// buffer; coordinates are in pixels.
type DrawFunc func(dc *gg.Context)

// Canvas adapts a gg.Context to the wayapp Renderer interface.
//
// The canvas is lazy: it repaints only after Reconfigure or
// Invalidate, so idle frame callbacks cost nothing. Animating callers
// invalidate from their repaint tick.
type Canvas struct {
	draw  DrawFunc
	dc    *gg.Context
	dirty bool
}

// New creates a canvas painting with draw.
func New(draw DrawFunc) *Canvas {
	return &Canvas{draw: draw}
}

// Context exposes the underlying gg.Context, nil before the first
// Reconfigure.
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

// Invalidate marks the canvas dirty so the next Render repaints.
func (c *Canvas) Invalidate() {
	c.dirty = true
}

// Reconfigure resizes the drawing context to the new buffer size.
func (c *Canvas) Reconfigure(width, height int) {
	if c.dc == nil {
		c.dc = gg.NewContext(width, height)
	} else if err := c.dc.Resize(width, height); err != nil {
		c.dc = gg.NewContext(width, height)
	}
	c.dirty = true
}

// Render paints into buf when dirty and reports whether it did.
func (c *Canvas) Render(buf *pixbuf.Buffer) bool {
	if c.dc == nil || c.draw == nil || !c.dirty {
		return false
	}
	c.dirty = false

	c.draw(c.dc)
	xdraw.Copy(buf.RGBA(), image.Point{}, c.dc.Image(), c.dc.Image().Bounds(), xdraw.Src, nil)
	return true
}

// InputFunc consumes one input event forwarded from the surface.
type InputFunc func(ev wayapp.Event)

// Interactive is a Canvas that also consumes input; it satisfies
// wayapp.InputRenderer. Every handled event invalidates the canvas so
// visual feedback shows on the next frame.
type Interactive struct {
	Canvas
	input InputFunc
}

// NewInteractive creates an input-consuming canvas.
func NewInteractive(draw DrawFunc, input InputFunc) *Interactive {
	return &Interactive{Canvas: Canvas{draw: draw}, input: input}
}

// HandleInput forwards the event and marks the canvas dirty.
func (c *Interactive) HandleInput(ev wayapp.Event) {
	if c.input != nil {
		c.input(ev)
	}
	c.dirty = true
}
