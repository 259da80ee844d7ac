// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package wayapp

import "time"

// DefaultDebounceWindow is the minimum interval between expensive
// buffer reallocations, roughly one 60 Hz frame.
const DefaultDebounceWindow = 16 * time.Millisecond

// ConfigureDebouncer separates the two halves of handling a configure
// event: a cheap geometry update that must always apply, and an
// expensive buffer reallocation that is rate-limited.
//
// The cheap step (viewport destination, scale transform) runs on
// every call. The expensive step (reallocate and repaint the pixel
// buffer) runs on the first configure and then at most once per
// Window; skipped calls rely on a later configure to eventually
// resize the buffer. The timestamp advances only when the expensive
// step actually runs, so a resize storm degrades to one reallocation
// per window rather than one per event.
//
// Known limitation, kept deliberately: when a storm ends on a skipped
// call, the buffer stays at its previous size (geometry updated,
// pixels stale) until the next configure or an explicit reallocation.
// There is no maximum-deferral bound.
//
// The zero value is ready to use with DefaultDebounceWindow.
type ConfigureDebouncer struct {
	// Window is the minimum interval between expensive steps.
	// Zero selects DefaultDebounceWindow.
	Window time.Duration

	lastExpensive time.Time

	// now is a test hook; nil means time.Now.
	now func() time.Time
}

// Configure applies one configure event. cheap is always invoked;
// expensive only when the debounce window has elapsed since the last
// expensive run (or on the very first configure). Either callback may
// be nil.
//
// Configure returns whether the expensive step ran.
func (d *ConfigureDebouncer) Configure(cheap, expensive func()) bool {
	if cheap != nil {
		cheap()
	}

	now := d.clock()
	if !d.lastExpensive.IsZero() && now.Sub(d.lastExpensive) < d.window() {
		return false
	}

	d.lastExpensive = now
	if expensive != nil {
		expensive()
	}
	return true
}

// Reset forgets the last expensive run, so the next Configure takes
// the expensive branch unconditionally.
func (d *ConfigureDebouncer) Reset() {
	d.lastExpensive = time.Time{}
}

func (d *ConfigureDebouncer) window() time.Duration {
	if d.Window <= 0 {
		return DefaultDebounceWindow
	}
	return d.Window
}

func (d *ConfigureDebouncer) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}
