// Package schedule coalesces update requests into at most one outstanding
// geometry request and at most one scheduled recompute.
package schedule

import (
	"time"

	"github.com/dshills/vstack/internal/loop"
)

// Requester issues and withdraws the geometry request.
type Requester interface {
	Request()
	Cancel()
}

// Options configures a Scheduler.
type Options struct {
	// Enabled reports whether virtualization is on. Requests are ignored
	// while it returns false. Nil means always enabled.
	Enabled func() bool

	// Requester resolves geometry; its result must be fed back to Resolve.
	Requester Requester

	// Queue defers the geometry request to the next loop turn.
	Queue loop.Poster

	// Clock runs the debounce timer.
	Clock loop.Clock

	// Delay returns the current debounce delay. Nil or <= 0 disables it.
	Delay func() time.Duration

	// AllowDelay permits the debounce delay to be applied.
	AllowDelay bool

	// Recompute runs the window calculation with the resolved geometry.
	Recompute func()
}

// Stats counts scheduler activity.
type Stats struct {
	Requests   int // geometry requests issued
	Coalesced  int // triggers folded into an in-flight request
	Resolved   int // geometry resolutions handled
	Skipped    int // resolutions without usable geometry
	Recomputes int // window recomputes run
}

// Scheduler implements the request/resolve/debounce protocol. It must be
// used from the loop thread only.
type Scheduler struct {
	opts Options

	pending bool
	final   bool
	timer   loop.Timer

	// gen invalidates request tasks queued before a Cancel.
	gen uint64

	stats Stats
}

// New creates a scheduler.
func New(opts Options) *Scheduler {
	return &Scheduler{opts: opts}
}

// SetAllowDelay toggles whether the debounce delay may be applied.
func (s *Scheduler) SetAllowDelay(allow bool) {
	s.opts.AllowDelay = allow
}

// Pending returns true while a geometry request is in flight.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// TimerActive returns true while a debounced recompute is scheduled.
func (s *Scheduler) TimerActive() bool {
	return s.timer != nil
}

// Stats returns activity counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// RequestUpdate asks for a geometry update. A request arriving while one
// is in flight is remembered and re-issued once the first resolves.
func (s *Scheduler) RequestUpdate() {
	if s.opts.Enabled != nil && !s.opts.Enabled() {
		return
	}
	if s.pending {
		s.final = true
		s.stats.Coalesced++
		return
	}

	s.final = false
	s.pending = true
	s.clearTimer()

	gen := s.gen
	s.opts.Queue.Post(func() {
		if gen != s.gen || !s.pending {
			return
		}
		s.stats.Requests++
		s.opts.Requester.Request()
	})
}

// Resolve handles the outcome of the geometry request. ok is false when the
// geometry was not ready.
func (s *Scheduler) Resolve(ok bool) {
	if !s.pending {
		return
	}
	s.pending = false
	s.stats.Resolved++

	if s.final {
		// Capture whatever changed while the request was in flight
		s.RequestUpdate()
	}

	if !ok {
		s.stats.Skipped++
		return
	}

	if s.delay() > 0 && s.opts.AllowDelay {
		s.startTimer()
		return
	}
	s.recompute()
}

// Recompute runs the window calculation now unless geometry is in flight.
// Returns true if it ran.
func (s *Scheduler) Recompute() bool {
	return s.recompute()
}

// Cancel withdraws any outstanding request and clears the debounce timer.
// Safe to call repeatedly.
func (s *Scheduler) Cancel() {
	s.gen++
	if s.pending {
		s.pending = false
		s.opts.Requester.Cancel()
	}
	s.final = false
	s.clearTimer()
}

func (s *Scheduler) recompute() bool {
	if s.pending {
		return false
	}
	s.stats.Recomputes++
	if s.opts.Recompute != nil {
		s.opts.Recompute()
	}
	return true
}

func (s *Scheduler) delay() time.Duration {
	if s.opts.Delay == nil {
		return 0
	}
	return s.opts.Delay()
}

func (s *Scheduler) startTimer() {
	s.clearTimer()

	var timer loop.Timer
	timer = s.opts.Clock.AfterFunc(s.delay(), func() {
		if s.timer != timer {
			return
		}
		s.timer = nil
		s.recompute()
	})
	s.timer = timer
}

func (s *Scheduler) clearTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
