package loop

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a scheduled single-shot callback.
type Timer interface {
	// Stop cancels the timer. Returns true if the callback had not run yet.
	Stop() bool
}

// Clock schedules callbacks onto the loop thread.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// token guards a posted callback so Stop wins over a fire already queued.
type token struct {
	done atomic.Bool
}

func (t *token) claim() bool {
	return t.done.CompareAndSwap(false, true)
}

// realTimer couples a time.Timer with its cancellation token.
type realTimer struct {
	t   *time.Timer
	tok *token
}

func (r *realTimer) Stop() bool {
	r.t.Stop()
	return r.tok.claim()
}

type realClock struct {
	q Poster
}

// NewClock returns a Clock backed by the runtime timer that delivers
// callbacks through q.
func NewClock(q Poster) Clock {
	return &realClock{q: q}
}

func (c *realClock) AfterFunc(d time.Duration, fn func()) Timer {
	tok := &token{}
	t := time.AfterFunc(d, func() {
		c.q.Post(func() {
			if tok.claim() {
				fn()
			}
		})
	})
	return &realTimer{t: t, tok: tok}
}

// ManualClock is a Clock whose time only moves when Advance is called.
type ManualClock struct {
	mu     sync.Mutex
	q      Poster
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Duration
	seq      int
	fn       func()
	tok      token
}

func (m *manualTimer) Stop() bool {
	if !m.tok.claim() {
		return false
	}
	m.clock.remove(m)
	return true
}

// NewManualClock creates a manual clock that posts due callbacks onto q.
func NewManualClock(q Poster) *ManualClock {
	return &ManualClock{q: q}
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	mt := &manualTimer{clock: c, deadline: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, mt)
	return mt
}

// Advance moves the clock forward and posts every callback whose deadline
// has been reached, in deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due, rest []*manualTimer
	for _, mt := range c.timers {
		if mt.deadline <= c.now {
			due = append(due, mt)
		} else {
			rest = append(rest, mt)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})

	for _, mt := range due {
		mt := mt
		c.q.Post(func() {
			if mt.tok.claim() {
				mt.fn()
			}
		})
	}
}

// Now returns the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of timers that have not reached their deadline.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *ManualClock) remove(mt *manualTimer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, t := range c.timers {
		if t == mt {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}
