// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package wayapp

import "github.com/Ciantic/wayapp/surface"

// Event is one demultiplexed protocol event. The concrete types below
// form a closed set mirroring what the windowing layer can deliver;
// the Dispatcher switches over them.
type Event interface {
	// EventSurface returns the identity the event is addressed to,
	// or surface.None when the protocol carries no surface reference
	// (key and modifier events, synthetic repaints).
	EventSurface() surface.Identity
}

// FrameEvent reports a frame callback: the compositor is ready for
// the next buffer. Time is the compositor timestamp in milliseconds.
type FrameEvent struct {
	ID   surface.Identity
	Time uint32
}

// ScaleFactorEvent reports a change of the output scale factor for a
// surface.
type ScaleFactorEvent struct {
	ID     surface.Identity
	Factor int32
}

// TransformEvent reports a change of the preferred buffer transform.
type TransformEvent struct {
	ID surface.Identity
}

// OutputEnterEvent reports that a surface started overlapping an
// output.
type OutputEnterEvent struct {
	ID     surface.Identity
	Output surface.Identity
}

// OutputLeaveEvent reports that a surface stopped overlapping an
// output.
type OutputLeaveEvent struct {
	ID     surface.Identity
	Output surface.Identity
}

// WindowConfigureEvent carries new geometry for a top-level window.
// Zero width or height means the client picks the size.
type WindowConfigureEvent struct {
	ID            surface.Identity
	Width, Height uint32
}

// LayerConfigureEvent carries new geometry for a layer surface.
type LayerConfigureEvent struct {
	ID            surface.Identity
	Width, Height uint32
	Serial        uint32
}

// PopupConfigureEvent carries position and size for a popup.
type PopupConfigureEvent struct {
	ID            surface.Identity
	X, Y          int32
	Width, Height uint32
}

// WindowCloseEvent reports that the compositor asked a window to
// close.
type WindowCloseEvent struct {
	ID surface.Identity
}

// LayerClosedEvent reports that a layer surface was closed by the
// compositor.
type LayerClosedEvent struct {
	ID surface.Identity
}

// PopupDoneEvent reports that a popup was dismissed.
type PopupDoneEvent struct {
	ID surface.Identity
}

// KeyboardEnterEvent reports keyboard focus moving onto a surface.
// Raw lists the scancodes already held down at enter time.
type KeyboardEnterEvent struct {
	ID  surface.Identity
	Raw []uint32
}

// KeyboardLeaveEvent reports keyboard focus leaving a surface.
type KeyboardLeaveEvent struct {
	ID surface.Identity
}

// Key describes one key in a press, release, or repeat event.
type Key struct {
	// Code is the raw scancode.
	Code uint32

	// Sym is the xkb keysym resolved for the active layout.
	Sym uint32

	// Text is the UTF-8 text the key produced, if any.
	Text string
}

// KeyPressEvent reports a key press. Key events carry no reliable
// surface reference at the protocol level: the dispatcher routes them
// to the current keyboard-focus holder and ignores ID.
type KeyPressEvent struct {
	ID  surface.Identity
	Key Key
}

// KeyReleaseEvent reports a key release. Routed like KeyPressEvent.
type KeyReleaseEvent struct {
	ID  surface.Identity
	Key Key
}

// KeyRepeatEvent reports an auto-repeat. Routed like KeyPressEvent.
type KeyRepeatEvent struct {
	ID  surface.Identity
	Key Key
}

// Modifiers is the state of the keyboard modifiers.
type Modifiers struct {
	Ctrl, Alt, Shift, Logo bool
	CapsLock, NumLock      bool
}

// ModifiersEvent reports a modifier-state change. Routed to the
// keyboard-focus holder.
type ModifiersEvent struct {
	Mods Modifiers
}

// PointerKind tags the sub-kind of a PointerEvent.
type PointerKind uint8

const (
	// PointerEnter reports the pointer entering the surface. Carries
	// the enter serial required for cursor-shape requests.
	PointerEnter PointerKind = iota + 1

	// PointerLeave reports the pointer leaving the surface.
	PointerLeave

	// PointerMotion reports movement at X, Y in surface-local
	// logical coordinates.
	PointerMotion

	// PointerPress reports a button press (Button holds the Linux
	// input event code, e.g. BtnLeft).
	PointerPress

	// PointerRelease reports a button release.
	PointerRelease

	// PointerAxis reports scrolling along AxisX/AxisY.
	PointerAxis
)

// Linux button codes from input-event-codes.h, as carried by
// PointerEvent.Button.
const (
	BtnLeft   uint32 = 0x110
	BtnRight  uint32 = 0x111
	BtnMiddle uint32 = 0x112
)

// PointerEvent reports pointer activity on a surface.
type PointerEvent struct {
	ID surface.Identity

	// Pointer identifies the wl_pointer device the event came from;
	// needed (together with Serial) to change the cursor shape.
	Pointer surface.Identity

	Kind PointerKind
	X, Y float64

	// Button is set for PointerPress/PointerRelease.
	Button uint32

	// Serial is set for PointerEnter.
	Serial uint32

	// AxisX and AxisY are set for PointerAxis.
	AxisX, AxisY float64
}

// RepaintEvent is the synthetic event the App injects into the loop
// when the frame scheduler's coalesced deadline fires. It names no
// surface; consumers decide what to redraw.
type RepaintEvent struct{}

func (e FrameEvent) EventSurface() surface.Identity           { return e.ID }
func (e ScaleFactorEvent) EventSurface() surface.Identity     { return e.ID }
func (e TransformEvent) EventSurface() surface.Identity       { return e.ID }
func (e OutputEnterEvent) EventSurface() surface.Identity     { return e.ID }
func (e OutputLeaveEvent) EventSurface() surface.Identity     { return e.ID }
func (e WindowConfigureEvent) EventSurface() surface.Identity { return e.ID }
func (e LayerConfigureEvent) EventSurface() surface.Identity  { return e.ID }
func (e PopupConfigureEvent) EventSurface() surface.Identity  { return e.ID }
func (e WindowCloseEvent) EventSurface() surface.Identity     { return e.ID }
func (e LayerClosedEvent) EventSurface() surface.Identity     { return e.ID }
func (e PopupDoneEvent) EventSurface() surface.Identity       { return e.ID }
func (e KeyboardEnterEvent) EventSurface() surface.Identity   { return e.ID }
func (e KeyboardLeaveEvent) EventSurface() surface.Identity   { return e.ID }

// Key and modifier events name no surface; see Dispatcher focus
// routing.
func (e KeyPressEvent) EventSurface() surface.Identity   { return surface.None }
func (e KeyReleaseEvent) EventSurface() surface.Identity { return surface.None }
func (e KeyRepeatEvent) EventSurface() surface.Identity  { return surface.None }
func (e ModifiersEvent) EventSurface() surface.Identity  { return surface.None }
func (e PointerEvent) EventSurface() surface.Identity    { return e.ID }
func (e RepaintEvent) EventSurface() surface.Identity    { return surface.None }

// CursorShape names a standard cursor image, mirroring the
// cursor-shape-v1 protocol enumeration (subset).
type CursorShape uint32

const (
	CursorDefault CursorShape = iota + 1
	CursorPointer
	CursorText
	CursorCrosshair
	CursorMove
	CursorGrab
	CursorGrabbing
	CursorEWResize
	CursorNSResize
	CursorNotAllowed
	CursorWait
)
