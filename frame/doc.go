// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

// Package frame coalesces repaint requests into a single wake
// deadline serviced by one background goroutine.
//
// A Scheduler holds at most one pending deadline. Concurrent
// Schedule calls merge into the earliest requested wake time, floored
// at the target-FPS interval so a flood of zero-delay requests cannot
// fire faster than the frame budget. When the deadline elapses the
// scheduler clears it and invokes the callback exactly once; an
// armed deadline can be pulled earlier but never delayed or
// withdrawn.
//
// The callback runs on the scheduler goroutine. It must not touch
// registries or protocol handles directly; marshal a synthetic event
// back into the owning event loop instead (wayapp.App does exactly
// that).
package frame
