// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package wayapp

import (
	"time"

	"github.com/gogpu/gputypes"
	"github.com/rs/zerolog"

	"github.com/Ciantic/wayapp/pixbuf"
	"github.com/Ciantic/wayapp/surface"
)

// Renderer paints a surface's pixels. Implementations are confined to
// the event-loop goroutine.
type Renderer interface {
	// Reconfigure reports the buffer size in pixels before the next
	// Render. Called on the first configure and whenever the buffer
	// is reallocated.
	Reconfigure(width, height int)

	// Render draws into buf and reports whether anything changed.
	// A false return skips the attach and commit.
	Render(buf *pixbuf.Buffer) bool
}

// InputRenderer is a Renderer that also consumes input. SurfaceState
// forwards pointer events, key events (focus-gated), and modifier
// changes to it.
type InputRenderer interface {
	Renderer
	HandleInput(ev Event)
}

const (
	defaultSurfaceWidth  = 256
	defaultSurfaceHeight = 256
)

// SurfaceState is a ready-made Handler that wires a Renderer to a
// Transport: it reacts to configure events with debounced buffer
// reallocation, tracks the output scale factor, renders on frame
// callbacks, and forwards input when it holds keyboard focus.
//
// Embed it and override individual callbacks for custom behavior.
type SurfaceState struct {
	kind      surface.Kind
	transport Transport

	pool     *pixbuf.Pool
	renderer Renderer
	schedule func(delay time.Duration)
	onClose  func()

	debounce ConfigureDebouncer
	buf      *pixbuf.Buffer
	format   gputypes.TextureFormat

	// width and height are the logical size the buffer was last
	// allocated for. They lag the committed viewport while a resize
	// storm is being debounced.
	width, height uint32
	scale         int32

	focused bool
	dirty   bool

	log zerolog.Logger
}

// StateOption configures a SurfaceState.
type StateOption func(*SurfaceState)

// WithRenderer sets the renderer painting the surface.
func WithRenderer(r Renderer) StateOption {
	return func(s *SurfaceState) {
		s.renderer = r
	}
}

// WithScheduleRepaint sets the repaint-request callback, normally
// App.ScheduleRepaint.
func WithScheduleRepaint(schedule func(delay time.Duration)) StateOption {
	return func(s *SurfaceState) {
		s.schedule = schedule
	}
}

// WithPool sets the buffer pool. States sharing one pool recycle each
// other's buffers.
func WithPool(p *pixbuf.Pool) StateOption {
	return func(s *SurfaceState) {
		s.pool = p
	}
}

// WithPixelFormat sets the buffer pixel format. The default is
// pixbuf.DefaultFormat.
func WithPixelFormat(format gputypes.TextureFormat) StateOption {
	return func(s *SurfaceState) {
		s.format = format
	}
}

// WithInitialSize sets the logical size used until the first
// configure arrives with a non-zero size.
func WithInitialSize(width, height uint32) StateOption {
	return func(s *SurfaceState) {
		s.width, s.height = width, height
	}
}

// WithCloseHandler sets the callback invoked on a close/dismiss
// request. The callback typically removes the entry from the registry
// and tears down the protocol objects.
func WithCloseHandler(onClose func()) StateOption {
	return func(s *SurfaceState) {
		s.onClose = onClose
	}
}

// WithStateLogger sets the logger for trace output.
func WithStateLogger(log zerolog.Logger) StateOption {
	return func(s *SurfaceState) {
		s.log = log
	}
}

// NewSurfaceState creates a state for the surface described by kind.
func NewSurfaceState(kind surface.Kind, transport Transport, opts ...StateOption) *SurfaceState {
	s := &SurfaceState{
		kind:      kind,
		transport: transport,
		width:     defaultSurfaceWidth,
		height:    defaultSurfaceHeight,
		scale:     1,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = pixbuf.NewPool()
	}
	return s
}

// Kind returns the kind the state was created for.
func (s *SurfaceState) Kind() surface.Kind {
	return s.kind
}

// Size returns the logical size the buffer was last allocated for.
func (s *SurfaceState) Size() (width, height uint32) {
	return s.width, s.height
}

// Scale returns the current buffer scale factor, at least 1.
func (s *SurfaceState) Scale() int32 {
	return s.scale
}

// Focused reports whether the surface holds keyboard focus.
func (s *SurfaceState) Focused() bool {
	return s.focused
}

// Repaint renders immediately and commits if anything changed. Used
// for the initial paint and by tests; steady-state repaints go through
// the scheduler and arrive as frame callbacks.
func (s *SurfaceState) Repaint() {
	s.realloc()
	s.render()
}

// OnConfigure applies new geometry. The viewport destination always
// follows the configure; the buffer reallocation and repaint are
// debounced so a resize storm costs one reallocation per window.
func (s *SurfaceState) OnConfigure(cfg Configure) {
	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = s.width
	}
	if height == 0 {
		height = s.height
	}

	s.debounce.Configure(
		func() {
			s.transport.SetViewportDestination(s.kind.Identity(), width, height)
		},
		func() {
			s.width, s.height = width, height
			s.realloc()
			s.render()
		},
	)

	s.requestFrame()
	s.transport.Commit(s.kind.Identity())
}

// OnScaleFactorChanged adopts a new output scale. Factors below 1 are
// clamped; an unchanged factor is a no-op.
func (s *SurfaceState) OnScaleFactorChanged(factor int32) {
	if factor < 1 {
		factor = 1
	}
	if factor == s.scale {
		return
	}
	s.scale = factor
	s.transport.SetBufferScale(s.kind.Identity(), factor)

	// A scale change invalidates the whole buffer; do not let the
	// configure debounce defer it.
	s.debounce.Reset()
	s.realloc()
	s.render()
	s.transport.Commit(s.kind.Identity())
}

// OnTransformChanged is a no-op; override to react to output
// transform changes.
func (s *SurfaceState) OnTransformChanged() {}

// OnFrame renders for a frame callback.
func (s *SurfaceState) OnFrame(time uint32) {
	_ = time
	s.render()
}

// OnSurfaceEnter is a no-op; per-output state is up to embedders.
func (s *SurfaceState) OnSurfaceEnter(output surface.Identity) {}

// OnSurfaceLeave is a no-op.
func (s *SurfaceState) OnSurfaceLeave(output surface.Identity) {}

// OnPointer forwards pointer activity to the renderer and asks for a
// repaint so hover feedback shows up.
func (s *SurfaceState) OnPointer(ev PointerEvent) {
	s.input(ev)
}

// OnKeyboardEnter marks the surface focused and forwards the held
// scancodes.
func (s *SurfaceState) OnKeyboardEnter(raw []uint32) {
	s.focused = true
	s.input(KeyboardEnterEvent{ID: s.kind.Identity(), Raw: raw})
}

// OnKeyboardLeave clears focus.
func (s *SurfaceState) OnKeyboardLeave() {
	s.focused = false
	s.input(KeyboardLeaveEvent{ID: s.kind.Identity()})
}

// OnKeyPress forwards the key while focused; unfocused key events are
// dropped.
func (s *SurfaceState) OnKeyPress(key Key) {
	if !s.focused {
		return
	}
	s.input(KeyPressEvent{Key: key})
}

// OnKeyRelease forwards the key while focused.
func (s *SurfaceState) OnKeyRelease(key Key) {
	if !s.focused {
		return
	}
	s.input(KeyReleaseEvent{Key: key})
}

// OnKeyRepeat forwards the key while focused.
func (s *SurfaceState) OnKeyRepeat(key Key) {
	if !s.focused {
		return
	}
	s.input(KeyRepeatEvent{Key: key})
}

// OnModifiers forwards modifier state while focused.
func (s *SurfaceState) OnModifiers(mods Modifiers) {
	if !s.focused {
		return
	}
	s.input(ModifiersEvent{Mods: mods})
}

// OnCloseRequested invokes the close handler, if any. Without one the
// request is trace-logged and ignored.
func (s *SurfaceState) OnCloseRequested() {
	if s.onClose == nil {
		s.log.Trace().Stringer("surface", s.kind.Identity()).
			Msg("surfacestate: close requested, no handler")
		return
	}
	s.onClose()
}

// Release returns the buffer to the pool. Call after removing the
// entry from the registry.
func (s *SurfaceState) Release() {
	s.pool.Release(s.buf)
	s.buf = nil
}

// input hands an event to the renderer and schedules a repaint.
func (s *SurfaceState) input(ev Event) {
	ir, ok := s.renderer.(InputRenderer)
	if !ok {
		return
	}
	ir.HandleInput(ev)
	if s.schedule != nil {
		s.schedule(0)
	}
}

// realloc sizes the buffer to the logical size times the scale factor
// and tells the renderer. No-op when the buffer already matches.
func (s *SurfaceState) realloc() {
	pw := int(s.width) * int(s.scale)
	ph := int(s.height) * int(s.scale)
	if s.buf != nil && s.buf.Width() == pw && s.buf.Height() == ph {
		return
	}

	if s.buf == nil {
		s.buf = s.pool.Acquire(pw, ph, s.format)
	} else {
		s.buf = s.pool.Resize(s.buf, pw, ph)
	}
	s.log.Trace().Stringer("surface", s.kind.Identity()).
		Int("width", pw).Int("height", ph).
		Msg("surfacestate: buffer reallocated")

	if s.renderer != nil {
		s.renderer.Reconfigure(pw, ph)
	}
	s.dirty = true
}

// render paints into the buffer and attaches it when the renderer
// reports damage. Frame callback first, then commit, so the next
// frame event latches with this commit.
func (s *SurfaceState) render() {
	if s.renderer == nil || s.buf == nil {
		return
	}
	if !s.renderer.Render(s.buf) && !s.dirty {
		return
	}
	s.dirty = false
	s.transport.Attach(s.kind.Identity(), s.buf)
	s.requestFrame()
	s.transport.Commit(s.kind.Identity())
}

func (s *SurfaceState) requestFrame() {
	s.transport.RequestFrame(s.kind.Identity())
}
