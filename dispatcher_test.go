// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package wayapp

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Ciantic/wayapp/surface"
)

// recordingHandler records every callback the dispatcher routes to it.
type recordingHandler struct {
	calls    []string
	frames   []uint32
	factors  []int32
	cfgs     []Configure
	pointers []PointerEvent
	keys     []Key
	mods     []Modifiers
	raw      [][]uint32
	outputs  []surface.Identity
}

func (h *recordingHandler) OnScaleFactorChanged(factor int32) {
	h.calls = append(h.calls, "scale")
	h.factors = append(h.factors, factor)
}

func (h *recordingHandler) OnTransformChanged() {
	h.calls = append(h.calls, "transform")
}

func (h *recordingHandler) OnFrame(time uint32) {
	h.calls = append(h.calls, "frame")
	h.frames = append(h.frames, time)
}

func (h *recordingHandler) OnSurfaceEnter(output surface.Identity) {
	h.calls = append(h.calls, "output-enter")
	h.outputs = append(h.outputs, output)
}

func (h *recordingHandler) OnSurfaceLeave(output surface.Identity) {
	h.calls = append(h.calls, "output-leave")
	h.outputs = append(h.outputs, output)
}

func (h *recordingHandler) OnConfigure(cfg Configure) {
	h.calls = append(h.calls, "configure")
	h.cfgs = append(h.cfgs, cfg)
}

func (h *recordingHandler) OnPointer(ev PointerEvent) {
	h.calls = append(h.calls, "pointer")
	h.pointers = append(h.pointers, ev)
}

func (h *recordingHandler) OnKeyboardEnter(raw []uint32) {
	h.calls = append(h.calls, "kbd-enter")
	h.raw = append(h.raw, raw)
}

func (h *recordingHandler) OnKeyboardLeave() {
	h.calls = append(h.calls, "kbd-leave")
}

func (h *recordingHandler) OnKeyPress(key Key) {
	h.calls = append(h.calls, "key-press")
	h.keys = append(h.keys, key)
}

func (h *recordingHandler) OnKeyRelease(key Key) {
	h.calls = append(h.calls, "key-release")
	h.keys = append(h.keys, key)
}

func (h *recordingHandler) OnKeyRepeat(key Key) {
	h.calls = append(h.calls, "key-repeat")
	h.keys = append(h.keys, key)
}

func (h *recordingHandler) OnModifiers(mods Modifiers) {
	h.calls = append(h.calls, "modifiers")
	h.mods = append(h.mods, mods)
}

func (h *recordingHandler) OnCloseRequested() {
	h.calls = append(h.calls, "close")
}

func newTestDispatcher() (*Dispatcher[*recordingHandler], *surface.Registry[*recordingHandler]) {
	reg := surface.NewRegistry[*recordingHandler]()
	return NewDispatcher(reg), reg
}

func TestDispatcherRoutesByIdentity(t *testing.T) {
	d, reg := newTestDispatcher()

	a, b := &recordingHandler{}, &recordingHandler{}
	reg.Insert(surface.Window(1), a)
	reg.Insert(surface.Window(2), b)

	d.Dispatch(FrameEvent{ID: 1, Time: 1234})
	d.Dispatch(ScaleFactorEvent{ID: 2, Factor: 2})
	d.Dispatch(TransformEvent{ID: 1})
	d.Dispatch(OutputEnterEvent{ID: 2, Output: 77})

	if diff := cmp.Diff([]string{"frame", "transform"}, a.calls); diff != "" {
		t.Errorf("surface 1 calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"scale", "output-enter"}, b.calls); diff != "" {
		t.Errorf("surface 2 calls mismatch (-want +got):\n%s", diff)
	}
	if a.frames[0] != 1234 {
		t.Errorf("frame time = %d, want 1234", a.frames[0])
	}
	if b.factors[0] != 2 || b.outputs[0] != 77 {
		t.Errorf("payloads = factor %d output %v, want 2 and surface#77",
			b.factors[0], b.outputs[0])
	}
}

// TestDispatcherDropsUnknown tests that events for unregistered
// identities are dropped without side effects.
func TestDispatcherDropsUnknown(t *testing.T) {
	d, reg := newTestDispatcher()

	h := &recordingHandler{}
	reg.Insert(surface.Window(1), h)

	d.Dispatch(FrameEvent{ID: 99})
	d.Dispatch(WindowConfigureEvent{ID: 99, Width: 10, Height: 10})
	d.Dispatch(WindowCloseEvent{ID: 99})
	d.Dispatch(PointerEvent{ID: 99, Kind: PointerMotion})

	if len(h.calls) != 0 {
		t.Errorf("unrelated handler received %v", h.calls)
	}
}

// TestDispatcherKeyRouting tests that key events follow keyboard
// focus, not the identity embedded in the event.
func TestDispatcherKeyRouting(t *testing.T) {
	d, reg := newTestDispatcher()

	a, b := &recordingHandler{}, &recordingHandler{}
	reg.Insert(surface.Window(1), a)
	reg.Insert(surface.Window(2), b)

	// No focus yet: dropped.
	d.Dispatch(KeyPressEvent{Key: Key{Code: 30}})
	if len(a.keys)+len(b.keys) != 0 {
		t.Fatal("key event routed before any keyboard enter")
	}

	d.Dispatch(KeyboardEnterEvent{ID: 1, Raw: []uint32{42}})
	if got := d.Focus(); got != 1 {
		t.Fatalf("Focus() = %v, want surface#1", got)
	}

	// The ID in the event names surface 2; focus wins.
	d.Dispatch(KeyPressEvent{ID: 2, Key: Key{Code: 30, Text: "a"}})
	d.Dispatch(KeyRepeatEvent{Key: Key{Code: 30, Text: "a"}})
	d.Dispatch(KeyReleaseEvent{Key: Key{Code: 30}})
	d.Dispatch(ModifiersEvent{Mods: Modifiers{Shift: true}})

	if len(b.keys) != 0 || len(b.mods) != 0 {
		t.Errorf("unfocused surface received keys %v mods %v", b.keys, b.mods)
	}
	want := []string{"kbd-enter", "key-press", "key-repeat", "key-release", "modifiers"}
	if diff := cmp.Diff(want, a.calls); diff != "" {
		t.Errorf("focused surface calls mismatch (-want +got):\n%s", diff)
	}
	if !a.mods[0].Shift {
		t.Error("modifier payload lost")
	}

	d.Dispatch(KeyboardLeaveEvent{ID: 1})
	if got := d.Focus(); got != surface.None {
		t.Fatalf("Focus() after leave = %v, want none", got)
	}
	d.Dispatch(KeyPressEvent{Key: Key{Code: 31}})
	if len(a.keys) != 3 {
		t.Errorf("key event routed after keyboard leave: %v", a.keys)
	}
}

// TestDispatcherFocusClearedOnLeave tests that a leave clears focus
// even when the surface is already gone from the registry.
func TestDispatcherFocusClearedOnLeave(t *testing.T) {
	d, reg := newTestDispatcher()

	h := &recordingHandler{}
	reg.Insert(surface.Window(1), h)
	d.Dispatch(KeyboardEnterEvent{ID: 1})

	reg.Remove(surface.Window(1))
	d.Dispatch(KeyboardLeaveEvent{ID: 1})

	if got := d.Focus(); got != surface.None {
		t.Errorf("Focus() = %v, want none", got)
	}
}

func TestDispatcherConfigure(t *testing.T) {
	d, reg := newTestDispatcher()

	win, layer, popup := &recordingHandler{}, &recordingHandler{}, &recordingHandler{}
	reg.Insert(surface.Window(1), win)
	reg.Insert(surface.Layer(2), layer)
	reg.Insert(surface.Popup(3), popup)

	d.Dispatch(WindowConfigureEvent{ID: 1, Width: 800, Height: 600})
	d.Dispatch(LayerConfigureEvent{ID: 2, Width: 1920, Height: 32, Serial: 9})
	d.Dispatch(PopupConfigureEvent{ID: 3, X: 10, Y: 20, Width: 200, Height: 100})

	if diff := cmp.Diff([]Configure{{
		Role: surface.RoleWindow, Width: 800, Height: 600,
	}}, win.cfgs); diff != "" {
		t.Errorf("window configure mismatch (-want +got):\n%s", diff)
	}
	if len(layer.cfgs) != 1 || layer.cfgs[0].Serial != 9 {
		t.Errorf("layer configure = %+v, want serial 9", layer.cfgs)
	}
	if len(popup.cfgs) != 1 || popup.cfgs[0].X != 10 || popup.cfgs[0].Y != 20 {
		t.Errorf("popup configure = %+v, want offset 10,20", popup.cfgs)
	}
}

// TestDispatcherRoleMismatch tests that configure and close events
// whose shell role disagrees with the registered Kind are dropped.
func TestDispatcherRoleMismatch(t *testing.T) {
	d, reg := newTestDispatcher()

	h := &recordingHandler{}
	reg.Insert(surface.Layer(1), h)

	d.Dispatch(WindowConfigureEvent{ID: 1, Width: 10, Height: 10})
	d.Dispatch(WindowCloseEvent{ID: 1})
	d.Dispatch(PopupDoneEvent{ID: 1})

	if len(h.calls) != 0 {
		t.Errorf("mismatched-role events routed: %v", h.calls)
	}

	d.Dispatch(LayerClosedEvent{ID: 1})
	if diff := cmp.Diff([]string{"close"}, h.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

// TestDispatcherPointerSerial tests that the enter serial is recorded
// even when the target surface is not registered.
func TestDispatcherPointerSerial(t *testing.T) {
	d, reg := newTestDispatcher()

	if _, _, ok := d.PointerState(); ok {
		t.Fatal("PointerState() reported a serial before any enter")
	}

	d.Dispatch(PointerEvent{ID: 99, Pointer: 7, Kind: PointerEnter, Serial: 41})
	pointer, serial, ok := d.PointerState()
	if !ok || pointer != 7 || serial != 41 {
		t.Errorf("PointerState() = %v, %d, %v, want 7, 41, true", pointer, serial, ok)
	}

	h := &recordingHandler{}
	reg.Insert(surface.Window(1), h)
	d.Dispatch(PointerEvent{ID: 1, Pointer: 7, Kind: PointerEnter, Serial: 42})
	d.Dispatch(PointerEvent{ID: 1, Kind: PointerPress, Button: BtnLeft})

	_, serial, _ = d.PointerState()
	if serial != 42 {
		t.Errorf("serial = %d, want latest enter 42", serial)
	}
	if len(h.pointers) != 2 || h.pointers[1].Button != BtnLeft {
		t.Errorf("pointer events = %+v", h.pointers)
	}
}

func TestDispatcherRepaintHook(t *testing.T) {
	d, _ := newTestDispatcher()

	// No hook installed: must not panic.
	d.Dispatch(RepaintEvent{})

	fired := 0
	d.OnRepaint = func() { fired++ }
	d.Dispatch(RepaintEvent{})
	d.Dispatch(RepaintEvent{})
	if fired != 2 {
		t.Errorf("repaint hook fired %d times, want 2", fired)
	}
}
