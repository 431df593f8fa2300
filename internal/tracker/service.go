package tracker

import (
	"github.com/dshills/vstack/internal/geom"
	"github.com/dshills/vstack/internal/loop"
)

// request is one (element, receiver) registration.
type request struct {
	el geom.Element
	r  Receiver
}

// Service is a Provider that can be shared by many engines. Requests made
// during one loop turn are measured together on the next turn, each element
// once, and every receiver gets a single batch with the entries it asked
// for, in request order.
//
// Service must only be used from the loop thread.
type Service struct {
	q        loop.Poster
	measurer Measurer

	pending   []request
	scheduled bool

	flushes int
}

// NewService creates a shared provider that measures through m and
// resolves on q.
func NewService(q loop.Poster, m Measurer) *Service {
	return &Service{q: q, measurer: m}
}

// RequestPosition registers a request. Duplicate registrations of the same
// element and receiver are collapsed.
func (s *Service) RequestPosition(el geom.Element, r Receiver) {
	if r == nil || !el.Valid() {
		return
	}
	for _, p := range s.pending {
		if p.el == el && p.r == r {
			return
		}
	}

	s.pending = append(s.pending, request{el: el, r: r})
	if !s.scheduled {
		s.scheduled = true
		s.q.Post(s.flush)
	}
}

// CancelRequestPosition removes a request. Unknown requests are ignored.
func (s *Service) CancelRequestPosition(el geom.Element, r Receiver) {
	for i, p := range s.pending {
		if p.el == el && p.r == r {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of outstanding requests.
func (s *Service) Pending() int {
	return len(s.pending)
}

// Flushes returns how many batches have been resolved.
func (s *Service) Flushes() int {
	return s.flushes
}

func (s *Service) flush() {
	s.scheduled = false
	if len(s.pending) == 0 {
		return
	}

	reqs := s.pending
	s.pending = nil
	s.flushes++

	rects := make(map[geom.Element]geom.Rect, len(reqs))
	missing := make(map[geom.Element]bool)

	var order []Receiver
	batches := make(map[Receiver][]Entry)

	for _, req := range reqs {
		if _, seen := batches[req.r]; !seen {
			order = append(order, req.r)
			batches[req.r] = nil
		}

		rect, ok := rects[req.el]
		if !ok && !missing[req.el] {
			rect, ok = s.measurer.Measure(req.el)
			if ok {
				rects[req.el] = rect
			} else {
				missing[req.el] = true
			}
		}
		if !ok {
			continue
		}
		batches[req.r] = append(batches[req.r], Entry{Target: req.el, Rect: rect})
	}

	for _, r := range order {
		r.ReceivePositions(batches[r])
	}
}
