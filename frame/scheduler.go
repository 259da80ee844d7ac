// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultTargetFPS is the scheduling floor applied when no target
	// is configured: requests are never honored faster than this.
	DefaultTargetFPS = 60.0

	// minTargetFPS is the clamp applied by SetTargetFPS so a zero or
	// negative target can never divide by zero or produce an
	// infinite interval.
	minTargetFPS = 0.0001
)

// Scheduler coalesces repaint requests into one pending deadline and
// fires a callback from a dedicated background goroutine when the
// deadline elapses.
//
// State machine: idle (no deadline) or armed(deadline). Schedule arms
// an idle scheduler, and re-arms an armed one only with a strictly
// earlier deadline; firing clears the deadline exactly once per armed
// interval. The goroutine is the single consumer, so callback
// invocations never overlap.
//
// Shared state between the requesting thread and the goroutine is
// limited to the mutex-guarded deadline and a buffered wake channel;
// no domain data crosses the boundary. Schedule never blocks beyond
// the brief mutex hold.
//
// A panic in the callback escapes the goroutine and is fatal to the
// process; there is no supervision.
type Scheduler struct {
	mu       sync.Mutex
	deadline time.Time // zero when idle
	fps      float64

	// wake has capacity 1: a pending token means "deadline changed,
	// recompute". Redundant wakeups coalesce in the buffer.
	wake chan struct{}
	done chan struct{}

	exited    chan struct{}
	closeOnce sync.Once

	emit func()
	log  zerolog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTargetFPS sets the initial target FPS (see SetTargetFPS).
func WithTargetFPS(fps float64) Option {
	return func(s *Scheduler) {
		s.fps = clampFPS(fps)
	}
}

// WithLogger sets the logger used for trace output.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.log = log
	}
}

// New creates a Scheduler and starts its background goroutine. emit
// is invoked once per fired deadline, on that goroutine. Call Close
// to stop it.
func New(emit func(), opts ...Option) *Scheduler {
	s := &Scheduler{
		fps:    DefaultTargetFPS,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		emit:   emit,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// Schedule requests a repaint after delay. The effective delay is
// floored at 1/targetFPS. When no deadline is armed the request arms
// one; when a deadline is armed the request replaces it only if
// strictly earlier. The goroutine is woken only when the effective
// wake time changed.
//
// Schedule is safe to call from any goroutine. Calling it after Close
// is harmless: the deadline may arm but nothing consumes it.
func (s *Scheduler) Schedule(delay time.Duration) {
	if min := s.minInterval(); delay < min {
		delay = min
	}
	candidate := time.Now().Add(delay)

	s.mu.Lock()
	if !s.deadline.IsZero() && !candidate.Before(s.deadline) {
		// Never delay an already-armed deadline.
		s.mu.Unlock()
		return
	}
	s.deadline = candidate
	s.mu.Unlock()

	s.log.Trace().Time("deadline", candidate).Msg("frame: deadline armed")

	// Non-blocking: a token already in the buffer covers this change
	// too, since the goroutine re-reads the deadline after waking.
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// SetTargetFPS sets the target FPS used to floor subsequent Schedule
// calls. Zero or negative values are clamped to a small positive
// epsilon. An already-armed deadline is not affected.
func (s *Scheduler) SetTargetFPS(fps float64) {
	s.mu.Lock()
	s.fps = clampFPS(fps)
	s.mu.Unlock()
}

// Close signals the goroutine to exit and waits for it. Close is
// idempotent. A deadline still armed at Close time never fires.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	<-s.exited
}

// run is the wait loop. Invariants: the deadline only ever moves
// earlier while armed, so once a wait expires it is always correct to
// fire; and the deadline is cleared under the mutex before emit, so
// each armed interval fires at most once.
func (s *Scheduler) run() {
	defer close(s.exited)

	for {
		s.mu.Lock()
		deadline := s.deadline
		s.mu.Unlock()

		if deadline.IsZero() {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}

		if wait := time.Until(deadline); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-s.wake:
				// Re-arm: recompute the remaining wait, no fire.
				timer.Stop()
				continue
			case <-s.done:
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		s.mu.Lock()
		s.deadline = time.Time{}
		s.mu.Unlock()

		s.log.Trace().Msg("frame: deadline fired")
		s.emit()
	}
}

func (s *Scheduler) minInterval() time.Duration {
	s.mu.Lock()
	fps := s.fps
	s.mu.Unlock()
	return time.Duration(float64(time.Second) / fps)
}

func clampFPS(fps float64) float64 {
	return math.Max(math.Abs(fps), minTargetFPS)
}
