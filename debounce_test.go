// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package wayapp

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock drives a ConfigureDebouncer deterministically.
type fakeClock struct {
	at time.Time
}

func (c *fakeClock) now() time.Time {
	return c.at
}

func (c *fakeClock) advanceTo(ms int64) {
	c.at = time.Unix(0, ms*int64(time.Millisecond))
}

// TestDebouncerSchedule replays the reference timing: configure
// events at t=0, 5, 10, 20ms with a 16ms window run the expensive
// step at t=0 and t=20 only, while the cheap step runs every time.
func TestDebouncerSchedule(t *testing.T) {
	clk := &fakeClock{}
	d := &ConfigureDebouncer{Window: 16 * time.Millisecond, now: clk.now}

	var cheapAt, expensiveAt []int64
	configureAt := func(ms int64) {
		clk.advanceTo(ms)
		d.Configure(
			func() { cheapAt = append(cheapAt, ms) },
			func() { expensiveAt = append(expensiveAt, ms) },
		)
	}

	for _, ms := range []int64{0, 5, 10, 20} {
		configureAt(ms)
	}

	if diff := cmp.Diff([]int64{0, 5, 10, 20}, cheapAt); diff != "" {
		t.Errorf("cheap step timestamps mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{0, 20}, expensiveAt); diff != "" {
		t.Errorf("expensive step timestamps mismatch (-want +got):\n%s", diff)
	}
}

// TestDebouncerFirstConfigureAlwaysExpensive tests that the very
// first configure takes the expensive branch regardless of the
// window.
func TestDebouncerFirstConfigureAlwaysExpensive(t *testing.T) {
	d := &ConfigureDebouncer{Window: time.Hour}

	if !d.Configure(nil, nil) {
		t.Error("first configure should run the expensive step")
	}
	if d.Configure(nil, nil) {
		t.Error("immediate second configure should skip the expensive step")
	}
}

// TestDebouncerStampAdvancesOnRunOnly tests that skipped calls do not
// push the next expensive run further out.
func TestDebouncerStampAdvancesOnRunOnly(t *testing.T) {
	clk := &fakeClock{}
	d := &ConfigureDebouncer{Window: 16 * time.Millisecond, now: clk.now}

	clk.advanceTo(0)
	d.Configure(nil, nil) // expensive, stamp = 0

	// A skip at t=15 must not delay the run due at t>=16.
	clk.advanceTo(15)
	if d.Configure(nil, nil) {
		t.Fatal("t=15 should skip (15 < 16 since last run)")
	}
	clk.advanceTo(16)
	if !d.Configure(nil, nil) {
		t.Error("t=16 should run (16ms since last run at t=0)")
	}
}

// TestDebouncerReset tests that Reset forces the next expensive run.
func TestDebouncerReset(t *testing.T) {
	d := &ConfigureDebouncer{Window: time.Hour}
	d.Configure(nil, nil)

	if d.Configure(nil, nil) {
		t.Fatal("second configure inside the window should skip")
	}

	d.Reset()
	if !d.Configure(nil, nil) {
		t.Error("configure after Reset should run the expensive step")
	}
}

// TestDebouncerZeroValue tests that the zero value uses the default
// window.
func TestDebouncerZeroValue(t *testing.T) {
	var d ConfigureDebouncer
	if got := d.window(); got != DefaultDebounceWindow {
		t.Errorf("window() = %v, want %v", got, DefaultDebounceWindow)
	}
	if !d.Configure(nil, nil) {
		t.Error("zero-value debouncer should run the first expensive step")
	}
}

// TestDebouncerCheapAlwaysRuns tests that the cheap step is never
// gated.
func TestDebouncerCheapAlwaysRuns(t *testing.T) {
	d := &ConfigureDebouncer{Window: time.Hour}

	cheap := 0
	for i := 0; i < 5; i++ {
		d.Configure(func() { cheap++ }, nil)
	}
	if cheap != 5 {
		t.Errorf("cheap step ran %d times, want 5", cheap)
	}
}
