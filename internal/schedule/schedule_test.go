package schedule

import (
	"testing"
	"time"

	"github.com/dshills/vstack/internal/loop"
)

type fakeRequester struct {
	requests int
	cancels  int
}

func (f *fakeRequester) Request() { f.requests++ }
func (f *fakeRequester) Cancel()  { f.cancels++ }

type harness struct {
	q          *loop.Queue
	clock      *loop.ManualClock
	req        *fakeRequester
	s          *Scheduler
	enabled    bool
	delay      time.Duration
	recomputes int
}

func newHarness() *harness {
	h := &harness{enabled: true}
	h.q = loop.NewQueue()
	h.clock = loop.NewManualClock(h.q)
	h.req = &fakeRequester{}
	h.s = New(Options{
		Enabled:    func() bool { return h.enabled },
		Requester:  h.req,
		Queue:      h.q,
		Clock:      h.clock,
		Delay:      func() time.Duration { return h.delay },
		AllowDelay: true,
		Recompute:  func() { h.recomputes++ },
	})
	return h
}

func TestRequestIsAsynchronous(t *testing.T) {
	h := newHarness()

	h.s.RequestUpdate()
	if h.req.requests != 0 {
		t.Error("expected request to be deferred to the next loop turn")
	}
	if !h.s.Pending() {
		t.Error("expected pending after RequestUpdate")
	}

	h.q.Drain()
	if h.req.requests != 1 {
		t.Errorf("expected 1 request, got %d", h.req.requests)
	}
}

func TestResolveRecomputes(t *testing.T) {
	h := newHarness()

	h.s.RequestUpdate()
	h.q.Drain()
	h.s.Resolve(true)

	if h.s.Pending() {
		t.Error("expected no pending request after resolve")
	}
	if h.recomputes != 1 {
		t.Errorf("expected 1 recompute, got %d", h.recomputes)
	}
}

func TestCoalescing(t *testing.T) {
	h := newHarness()

	for i := 0; i < 10; i++ {
		h.s.RequestUpdate()
	}
	h.q.Drain()

	if h.req.requests != 1 {
		t.Fatalf("expected exactly 1 request in flight, got %d", h.req.requests)
	}
	if h.s.Stats().Coalesced != 9 {
		t.Errorf("expected 9 coalesced triggers, got %d", h.s.Stats().Coalesced)
	}

	// First resolution re-issues to pick up changes made while in flight,
	// and does not recompute with the superseded geometry.
	h.s.Resolve(true)
	if h.recomputes != 0 {
		t.Errorf("expected no recompute while the final request is pending, got %d", h.recomputes)
	}
	if !h.s.Pending() {
		t.Fatal("expected final request to be pending")
	}

	h.q.Drain()
	if h.req.requests != 2 {
		t.Errorf("expected the final request to be issued, got %d requests", h.req.requests)
	}

	h.s.Resolve(true)
	if h.recomputes != 1 {
		t.Errorf("expected exactly 1 recompute, got %d", h.recomputes)
	}
	if h.s.Pending() {
		t.Error("expected no further request")
	}
}

func TestDisabledIgnoresRequests(t *testing.T) {
	h := newHarness()
	h.enabled = false

	h.s.RequestUpdate()
	h.q.Drain()

	if h.s.Pending() {
		t.Error("expected disabled scheduler to stay idle")
	}
	if h.req.requests != 0 {
		t.Errorf("expected no geometry request, got %d", h.req.requests)
	}
}

func TestResolveNotReadySkips(t *testing.T) {
	h := newHarness()

	h.s.RequestUpdate()
	h.q.Drain()
	h.s.Resolve(false)

	if h.recomputes != 0 {
		t.Errorf("expected no recompute for missing geometry, got %d", h.recomputes)
	}
	if h.s.Stats().Skipped != 1 {
		t.Errorf("expected 1 skipped resolution, got %d", h.s.Stats().Skipped)
	}

	// The next trigger retries
	h.s.RequestUpdate()
	h.q.Drain()
	h.s.Resolve(true)
	if h.recomputes != 1 {
		t.Errorf("expected retry to recompute, got %d", h.recomputes)
	}
}

func TestLateResolveIgnored(t *testing.T) {
	h := newHarness()

	h.s.Resolve(true)
	if h.recomputes != 0 {
		t.Error("expected resolve without a pending request to be ignored")
	}
}

func TestDebounce(t *testing.T) {
	h := newHarness()
	h.delay = 100 * time.Millisecond

	h.s.RequestUpdate()
	h.q.Drain()
	h.s.Resolve(true)

	if h.recomputes != 0 {
		t.Error("expected recompute to be deferred")
	}
	if !h.s.TimerActive() {
		t.Fatal("expected debounce timer")
	}

	h.clock.Advance(50 * time.Millisecond)
	h.q.Drain()
	if h.recomputes != 0 {
		t.Error("expected no recompute before the delay elapses")
	}

	// A new trigger clears the timer
	h.s.RequestUpdate()
	if h.s.TimerActive() {
		t.Error("expected new request to clear the debounce timer")
	}
	h.q.Drain()
	h.s.Resolve(true)

	h.clock.Advance(60 * time.Millisecond)
	h.q.Drain()
	if h.recomputes != 0 {
		t.Error("expected superseded timer not to fire")
	}

	h.clock.Advance(40 * time.Millisecond)
	h.q.Drain()
	if h.recomputes != 1 {
		t.Errorf("expected exactly 1 recompute after the burst, got %d", h.recomputes)
	}
	if h.s.TimerActive() {
		t.Error("expected timer to be cleared after firing")
	}
}

func TestDebounceNotAllowed(t *testing.T) {
	h := newHarness()
	h.delay = 100 * time.Millisecond
	h.s.SetAllowDelay(false)

	h.s.RequestUpdate()
	h.q.Drain()
	h.s.Resolve(true)

	if h.recomputes != 1 {
		t.Errorf("expected immediate recompute when delay is not allowed, got %d", h.recomputes)
	}
}

func TestCancel(t *testing.T) {
	h := newHarness()

	h.s.RequestUpdate()
	h.s.Cancel()
	h.q.Drain()

	if h.req.requests != 0 {
		t.Errorf("expected queued request to be dropped after cancel, got %d", h.req.requests)
	}
	if h.s.Pending() {
		t.Error("expected no pending request after cancel")
	}

	h.s.RequestUpdate()
	h.q.Drain()
	h.s.Cancel()
	h.s.Cancel()

	if h.req.cancels != 2 {
		t.Errorf("expected each pending request to be withdrawn once, got %d", h.req.cancels)
	}

	h.s.Resolve(true)
	if h.recomputes != 0 {
		t.Error("expected late resolution after cancel to be ignored")
	}
}

func TestCancelClearsTimer(t *testing.T) {
	h := newHarness()
	h.delay = 10 * time.Millisecond

	h.s.RequestUpdate()
	h.q.Drain()
	h.s.Resolve(true)
	h.s.Cancel()

	h.clock.Advance(time.Second)
	h.q.Drain()
	if h.recomputes != 0 {
		t.Error("expected cancel to clear the debounce timer")
	}
}

func TestRecomputeBlockedWhilePending(t *testing.T) {
	h := newHarness()

	h.s.RequestUpdate()
	if h.s.Recompute() {
		t.Error("expected Recompute to refuse while geometry is in flight")
	}
	h.q.Drain()
	h.s.Resolve(true)

	if !h.s.Recompute() {
		t.Error("expected Recompute to run when idle")
	}
	if h.recomputes != 2 {
		t.Errorf("expected 2 recomputes, got %d", h.recomputes)
	}
}
