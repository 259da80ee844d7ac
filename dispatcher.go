// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package wayapp

import (
	"github.com/rs/zerolog"

	"github.com/Ciantic/wayapp/surface"
)

// Dispatcher routes protocol events to registry entries by identity.
//
// It is single-threaded and cooperative: Dispatch must only be called
// from the goroutine that owns the registry. Events addressed to an
// identity with no registry entry are dropped silently; that is the
// expected race between a close and in-flight events, not an error.
//
// Beyond routing, the dispatcher keeps two pieces of seat state the
// protocol does not attach to individual events:
//
//   - keyboard focus: exactly one identity holds it; key and modifier
//     events carry no usable surface reference and are routed to the
//     holder.
//   - the most recent pointer-enter serial and pointer device, which
//     must be replayed verbatim in cursor-shape requests.
type Dispatcher[T Handler] struct {
	reg *surface.Registry[T]

	focus surface.Identity

	pointer     surface.Identity
	enterSerial uint32
	haveSerial  bool

	// OnRepaint is invoked for synthetic RepaintEvents. App installs
	// a default that repaints every registered payload able to;
	// replace it for custom redraw logic.
	OnRepaint func()

	log zerolog.Logger
}

// NewDispatcher creates a dispatcher over reg.
func NewDispatcher[T Handler](reg *surface.Registry[T]) *Dispatcher[T] {
	return &Dispatcher[T]{reg: reg, log: zerolog.Nop()}
}

// SetLogger sets the logger used for trace output.
func (d *Dispatcher[T]) SetLogger(log zerolog.Logger) {
	d.log = log
}

// Focus returns the identity currently holding keyboard focus, or
// surface.None.
func (d *Dispatcher[T]) Focus() surface.Identity {
	return d.focus
}

// PointerState returns the pointer device and enter serial recorded
// from the most recent pointer-enter, and whether one was seen.
func (d *Dispatcher[T]) PointerState() (pointer surface.Identity, serial uint32, ok bool) {
	return d.pointer, d.enterSerial, d.haveSerial
}

// Dispatch routes one event. Must be called on the event-loop
// goroutine.
func (d *Dispatcher[T]) Dispatch(ev Event) {
	switch e := ev.(type) {
	case FrameEvent:
		if h := d.lookup(e.ID, "frame"); h != nil {
			(*h).OnFrame(e.Time)
		}

	case ScaleFactorEvent:
		if h := d.lookup(e.ID, "scale"); h != nil {
			(*h).OnScaleFactorChanged(e.Factor)
		}

	case TransformEvent:
		if h := d.lookup(e.ID, "transform"); h != nil {
			(*h).OnTransformChanged()
		}

	case OutputEnterEvent:
		if h := d.lookup(e.ID, "output-enter"); h != nil {
			(*h).OnSurfaceEnter(e.Output)
		}

	case OutputLeaveEvent:
		if h := d.lookup(e.ID, "output-leave"); h != nil {
			(*h).OnSurfaceLeave(e.Output)
		}

	case WindowConfigureEvent:
		d.configure(e.ID, surface.RoleWindow, Configure{
			Role:  surface.RoleWindow,
			Width: e.Width, Height: e.Height,
		})

	case LayerConfigureEvent:
		d.configure(e.ID, surface.RoleLayer, Configure{
			Role:  surface.RoleLayer,
			Width: e.Width, Height: e.Height,
			Serial: e.Serial,
		})

	case PopupConfigureEvent:
		d.configure(e.ID, surface.RolePopup, Configure{
			Role:  surface.RolePopup,
			Width: e.Width, Height: e.Height,
			X: e.X, Y: e.Y,
		})

	case WindowCloseEvent:
		d.closeRequested(e.ID, surface.RoleWindow)
	case LayerClosedEvent:
		d.closeRequested(e.ID, surface.RoleLayer)
	case PopupDoneEvent:
		d.closeRequested(e.ID, surface.RolePopup)

	case PointerEvent:
		// The enter serial must be remembered even when the surface
		// is not (or no longer) registered; cursor-shape requests
		// replay it later.
		if e.Kind == PointerEnter {
			d.pointer = e.Pointer
			d.enterSerial = e.Serial
			d.haveSerial = true
		}
		if h := d.lookup(e.ID, "pointer"); h != nil {
			(*h).OnPointer(e)
		}

	case KeyboardEnterEvent:
		d.focus = e.ID
		d.log.Trace().Stringer("surface", e.ID).Msg("dispatch: keyboard focus gained")
		if h := d.lookup(e.ID, "keyboard-enter"); h != nil {
			(*h).OnKeyboardEnter(e.Raw)
		}

	case KeyboardLeaveEvent:
		if h := d.lookup(e.ID, "keyboard-leave"); h != nil {
			(*h).OnKeyboardLeave()
		}
		d.focus = surface.None
		d.log.Trace().Stringer("surface", e.ID).Msg("dispatch: keyboard focus lost")

	case KeyPressEvent:
		if h := d.focused("key-press"); h != nil {
			(*h).OnKeyPress(e.Key)
		}
	case KeyReleaseEvent:
		if h := d.focused("key-release"); h != nil {
			(*h).OnKeyRelease(e.Key)
		}
	case KeyRepeatEvent:
		if h := d.focused("key-repeat"); h != nil {
			(*h).OnKeyRepeat(e.Key)
		}
	case ModifiersEvent:
		if h := d.focused("modifiers"); h != nil {
			(*h).OnModifiers(e.Mods)
		}

	case RepaintEvent:
		if d.OnRepaint != nil {
			d.OnRepaint()
		}

	default:
		d.log.Trace().Type("event", ev).Msg("dispatch: unknown event dropped")
	}
}

// lookup resolves id to its payload, trace-logging the drop when the
// identity is unregistered.
func (d *Dispatcher[T]) lookup(id surface.Identity, what string) *T {
	h := d.reg.Data(id)
	if h == nil {
		d.log.Trace().Stringer("surface", id).Str("event", what).
			Msg("dispatch: no entry, event dropped")
	}
	return h
}

// focused resolves the keyboard-focus holder for events that carry no
// surface reference of their own.
func (d *Dispatcher[T]) focused(what string) *T {
	if d.focus == surface.None {
		d.log.Trace().Str("event", what).Msg("dispatch: no keyboard focus, event dropped")
		return nil
	}
	return d.lookup(d.focus, what)
}

// configure routes a role-specific configure event, dropping it when
// the registered Kind does not match the event's shell role.
func (d *Dispatcher[T]) configure(id surface.Identity, role surface.Role, cfg Configure) {
	kind, ok := d.reg.Get(id)
	if !ok {
		d.log.Trace().Stringer("surface", id).Msg("dispatch: no entry, configure dropped")
		return
	}
	if kind.Role() != role {
		d.log.Trace().Stringer("surface", id).
			Stringer("have", kind.Role()).Stringer("event", role).
			Msg("dispatch: configure role mismatch, dropped")
		return
	}
	if h := d.reg.Data(id); h != nil {
		(*h).OnConfigure(cfg)
	}
}

// closeRequested routes a role-specific close/dismiss event.
func (d *Dispatcher[T]) closeRequested(id surface.Identity, role surface.Role) {
	kind, ok := d.reg.Get(id)
	if !ok {
		d.log.Trace().Stringer("surface", id).Msg("dispatch: no entry, close dropped")
		return
	}
	if kind.Role() != role {
		d.log.Trace().Stringer("surface", id).
			Stringer("have", kind.Role()).Stringer("event", role).
			Msg("dispatch: close role mismatch, dropped")
		return
	}
	if h := d.reg.Data(id); h != nil {
		(*h).OnCloseRequested()
	}
}
