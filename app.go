// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package wayapp

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ciantic/wayapp/frame"
	"github.com/Ciantic/wayapp/pixbuf"
	"github.com/Ciantic/wayapp/surface"
)

// Transport is the boundary to the windowing-protocol layer. wayapp
// never speaks the wire protocol itself; it calls back through this
// interface to commit state, request frame callbacks, and change the
// cursor. Implementations are expected to be cheap, non-blocking
// wrappers over already-connected protocol objects.
//
// All methods are invoked from the event-loop goroutine only.
type Transport interface {
	// Commit atomically applies pending surface state.
	Commit(id surface.Identity)

	// RequestFrame asks for a frame callback, delivered later as a
	// FrameEvent. Callers commit afterwards to latch the request.
	RequestFrame(id surface.Identity)

	// SetViewportDestination sets the logical presentation size of
	// the surface (the cheap half of a resize).
	SetViewportDestination(id surface.Identity, width, height uint32)

	// SetBufferScale declares the scale factor of attached buffers.
	SetBufferScale(id surface.Identity, scale int32)

	// Attach hands a rendered pixel buffer to the surface. The
	// buffer stays owned by the caller's pool.
	Attach(id surface.Identity, buf *pixbuf.Buffer)

	// SetCursorShape replays an enter serial on a pointer device to
	// select a cursor image. The serial must be the one from the
	// most recent pointer-enter, verbatim.
	SetCursorShape(pointer surface.Identity, serial uint32, shape CursorShape)

	// Flush pushes buffered requests out to the compositor.
	Flush() error
}

// Source supplies demultiplexed protocol events. Read blocks until at
// least one event is available and returns io.EOF when the connection
// is done.
type Source interface {
	Read() ([]Event, error)
}

// App is the explicit per-application context tying the registry,
// dispatcher, and repaint scheduler together. There is no process
// global; construct one App per connection and Close it when done.
type App[T Handler] struct {
	// Registry owns the per-surface payloads. Mutate it only from
	// the event-loop goroutine.
	Registry *surface.Registry[T]

	// Dispatcher routes events into the registry. Its OnRepaint hook
	// receives the scheduler's synthetic repaints.
	Dispatcher *Dispatcher[T]

	// Scheduler coalesces repaint requests; its callback posts a
	// RepaintEvent back into the loop, it never touches the registry.
	Scheduler *frame.Scheduler

	transport Transport

	// repaints carries scheduler fires to the loop goroutine.
	// Capacity 1: pending repaints coalesce, matching the scheduler's
	// own one-deadline model.
	repaints chan struct{}

	log zerolog.Logger
}

// Option configures an App.
type Option func(*appConfig)

type appConfig struct {
	log zerolog.Logger
	fps float64
}

// WithLogger sets the logger shared by the app, dispatcher, and
// scheduler. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *appConfig) {
		c.log = log
	}
}

// WithTargetFPS sets the scheduler's initial target FPS.
func WithTargetFPS(fps float64) Option {
	return func(c *appConfig) {
		c.fps = fps
	}
}

// New creates an App over the given transport and starts its repaint
// scheduler. Call Close to stop the scheduler goroutine.
func New[T Handler](transport Transport, opts ...Option) *App[T] {
	cfg := appConfig{log: zerolog.Nop(), fps: frame.DefaultTargetFPS}
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := surface.NewRegistry[T]()
	disp := NewDispatcher(reg)
	disp.SetLogger(cfg.log)

	a := &App[T]{
		Registry:   reg,
		Dispatcher: disp,
		transport:  transport,
		repaints:   make(chan struct{}, 1),
		log:        cfg.log,
	}
	a.Scheduler = frame.New(a.postRepaint,
		frame.WithTargetFPS(cfg.fps),
		frame.WithLogger(cfg.log),
	)
	disp.OnRepaint = a.repaintAll
	return a
}

// repainter is implemented by payloads that can repaint themselves;
// SurfaceState does.
type repainter interface {
	Repaint()
}

// repaintAll is the default OnRepaint hook: it fans a scheduler fire
// out to every registered payload that implements Repaint. Replace
// Dispatcher.OnRepaint for custom redraw logic.
func (a *App[T]) repaintAll() {
	a.Registry.Each(func(_ surface.Kind, data *T) {
		if r, ok := any(*data).(repainter); ok {
			r.Repaint()
		}
	})
}

// ScheduleRepaint asks for a repaint after delay. This is the
// callback handed to the GUI/render layer; it is safe from any
// goroutine and coalesces with other pending requests.
func (a *App[T]) ScheduleRepaint(delay time.Duration) {
	a.Scheduler.Schedule(delay)
}

// postRepaint runs on the scheduler goroutine. It only marshals a
// token to the loop; the registry is never touched from here.
func (a *App[T]) postRepaint() {
	select {
	case a.repaints <- struct{}{}:
	default:
	}
}

// Dispatch routes a batch of events on the caller's goroutine, which
// must be the event-loop goroutine. Use Run for the managed loop.
func (a *App[T]) Dispatch(events ...Event) {
	for _, ev := range events {
		a.Dispatcher.Dispatch(ev)
	}
}

// PollRepaint dispatches a pending synthetic RepaintEvent, if any,
// and reports whether one was dispatched. For callers pumping the
// loop manually instead of using Run.
func (a *App[T]) PollRepaint() bool {
	select {
	case <-a.repaints:
		a.Dispatcher.Dispatch(RepaintEvent{})
		return true
	default:
		return false
	}
}

// SetCursor requests a cursor shape using the most recent recorded
// pointer-enter serial. A no-op until a pointer has entered some
// surface.
func (a *App[T]) SetCursor(shape CursorShape) {
	pointer, serial, ok := a.Dispatcher.PointerState()
	if !ok {
		a.log.Trace().Msg("app: no pointer enter recorded, cursor request dropped")
		return
	}
	a.transport.SetCursorShape(pointer, serial, shape)
}

// Transport returns the transport the app was built over.
func (a *App[T]) Transport() Transport {
	return a.transport
}

// Run drives the event loop until ctx is cancelled or src reports
// io.EOF. Protocol events and synthetic repaints are dispatched on
// this goroutine only; src.Read runs on an internal reader goroutine
// so a quiet connection cannot starve scheduled repaints.
//
// Run returns nil on EOF, ctx.Err() on cancellation, and the read
// error otherwise.
func (a *App[T]) Run(ctx context.Context, src Source) error {
	batches := make(chan []Event)
	errc := make(chan error, 1)

	go func() {
		for {
			events, err := src.Read()
			if err != nil {
				errc <- err
				return
			}
			select {
			case batches <- events:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-errc:
			if errors.Is(err, io.EOF) {
				a.log.Debug().Msg("app: event source finished")
				return nil
			}
			return err

		case events := <-batches:
			for _, ev := range events {
				a.Dispatcher.Dispatch(ev)
			}
			if err := a.transport.Flush(); err != nil {
				return err
			}

		case <-a.repaints:
			a.Dispatcher.Dispatch(RepaintEvent{})
			if err := a.transport.Flush(); err != nil {
				return err
			}
		}
	}
}

// Close stops the repaint scheduler and joins its goroutine. The
// registry and dispatcher need no teardown. Close is idempotent.
func (a *App[T]) Close() {
	a.Scheduler.Close()
}
