// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package wayapp

import "github.com/Ciantic/wayapp/surface"

// Configure carries the geometry of a configure event, normalized
// across the shell roles. Role tells which variant produced it.
type Configure struct {
	Role surface.Role

	// Width and Height are the requested logical size. For windows a
	// zero dimension means the client keeps its current size.
	Width, Height uint32

	// X and Y are the placement offsets; popups only.
	X, Y int32

	// Serial is the configure serial; layer surfaces only.
	Serial uint32
}

// Handler is the capability set every registered surface payload
// implements. The Dispatcher invokes exactly one method per routed
// event, always on the event-loop goroutine.
//
// SurfaceState is a ready-made implementation; embed it to override a
// subset of the callbacks.
type Handler interface {
	// OnScaleFactorChanged reports a new output scale factor.
	OnScaleFactorChanged(factor int32)

	// OnTransformChanged reports a new preferred buffer transform.
	OnTransformChanged()

	// OnFrame reports a frame callback with the compositor timestamp.
	OnFrame(time uint32)

	// OnSurfaceEnter and OnSurfaceLeave report output overlap changes.
	OnSurfaceEnter(output surface.Identity)
	OnSurfaceLeave(output surface.Identity)

	// OnConfigure reports new geometry for the surface.
	OnConfigure(cfg Configure)

	// OnPointer reports pointer activity on the surface.
	OnPointer(ev PointerEvent)

	// OnKeyboardEnter and OnKeyboardLeave report keyboard focus
	// changes. Raw lists the scancodes held at enter time.
	OnKeyboardEnter(raw []uint32)
	OnKeyboardLeave()

	// OnKeyPress, OnKeyRelease, and OnKeyRepeat receive key events
	// routed by keyboard focus, not by any identity in the event.
	OnKeyPress(key Key)
	OnKeyRelease(key Key)
	OnKeyRepeat(key Key)

	// OnModifiers receives modifier-state changes, routed by focus.
	OnModifiers(mods Modifiers)

	// OnCloseRequested reports a close/dismiss request from the
	// compositor. The handler decides whether to remove the entry.
	OnCloseRequested()
}
