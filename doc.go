// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

// Package wayapp is a client-side windowing layer that tracks live
// on-screen surfaces and coalesces repaint requests into an efficient
// wake schedule.
//
// # Overview
//
// wayapp sits between an already-demultiplexed windowing-protocol
// event source and a rendering/GUI layer. It does not speak the wire
// protocol and it does not render; it owns the bookkeeping in
// between:
//
//   - surface.Registry: a generic keyed registry of surface entities
//     with parent/child sub-surface relationships and recursive
//     traversal.
//   - frame.Scheduler: a background goroutine holding at most one
//     pending wake deadline, merging concurrent repaint requests into
//     the earliest one.
//   - ConfigureDebouncer: per-surface separation of cheap geometry
//     updates from expensive buffer reallocation on resize storms.
//   - Dispatcher: routes protocol events to registry entries by
//     identity, tracks single-surface keyboard focus, and remembers
//     the pointer-enter serial needed for cursor-shape requests.
//   - App: an explicit context object tying the pieces together with
//     a single-goroutine event loop.
//
// # Quick start
//
//	app := wayapp.New[*wayapp.SurfaceState](transport)
//	defer app.Close()
//
//	st := wayapp.NewSurfaceState(surface.Window(id), transport,
//	    wayapp.WithRenderer(ggdraw.New(drawFn)),
//	    wayapp.WithScheduleRepaint(app.ScheduleRepaint))
//	app.Registry.Insert(surface.Window(id), st)
//
//	if err := app.Run(ctx, source); err != nil {
//	    log.Fatal().Err(err).Msg("event loop failed")
//	}
//
// # Threading model
//
// The Dispatcher, Registry, and ConfigureDebouncer are confined to
// the one goroutine running App.Run. Only frame.Scheduler owns a
// second goroutine, and the only state shared with it is a
// mutex-guarded deadline; its fires are marshalled back into the loop
// as synthetic RepaintEvents, never applied directly.
package wayapp
