package tracker

import (
	"testing"

	"github.com/dshills/vstack/internal/geom"
	"github.com/dshills/vstack/internal/loop"
)

type resolution struct {
	container geom.Rect
	viewport  geom.Rect
	ok        bool
}

type fixedScroll struct{ x, y float64 }

func (f fixedScroll) ScrollOffset() (float64, float64) { return f.x, f.y }

func newTestTracker(rects map[geom.Element]geom.Rect, scroller Scroller) (*Tracker, *Service, *loop.Queue, *[]resolution) {
	q := loop.NewQueue()
	svc := NewService(q, staticMeasurer(rects, nil))
	var got []resolution
	tr := New(svc, scroller, func(c, v geom.Rect, ok bool) {
		got = append(got, resolution{c, v, ok})
	})
	return tr, svc, q, &got
}

func TestTrackerResolvesBoth(t *testing.T) {
	tr, _, q, got := newTestTracker(map[geom.Element]geom.Rect{
		"container": geom.NewRect(0, 0, 100, 10000),
		"viewport":  geom.NewRect(0, 2000, 100, 2500),
	}, nil)
	tr.SetElements("container", "viewport")

	tr.Request()
	if !tr.Outstanding() {
		t.Error("expected outstanding request")
	}
	q.Drain()

	if len(*got) != 1 {
		t.Fatalf("expected 1 resolution, got %d", len(*got))
	}
	res := (*got)[0]
	if !res.ok {
		t.Fatal("expected ok resolution")
	}
	if res.viewport.Top() != 2000 || res.container.Bottom() != 10000 {
		t.Errorf("unexpected rects %v %v", res.container, res.viewport)
	}
	if tr.Outstanding() {
		t.Error("expected no outstanding request after resolution")
	}
}

func TestTrackerIgnoresPartialBatch(t *testing.T) {
	tr, _, q, got := newTestTracker(map[geom.Element]geom.Rect{
		"container": geom.NewRect(0, 0, 100, 10000),
	}, nil)
	tr.SetElements("container", "viewport")

	tr.Request()
	q.Drain()

	if len(*got) != 1 {
		t.Fatalf("expected 1 resolution, got %d", len(*got))
	}
	if (*got)[0].ok {
		t.Error("expected partial batch to be reported as not ready")
	}
}

func TestTrackerDocumentScrollOffset(t *testing.T) {
	tr, _, q, got := newTestTracker(map[geom.Element]geom.Rect{
		"container":   geom.NewRect(0, 0, 100, 10000),
		geom.Document: geom.NewRect(0, 0, 100, 500),
	}, fixedScroll{x: 0, y: 2000})
	tr.SetElements("container", geom.Document)

	tr.Request()
	q.Drain()

	if len(*got) != 1 || !(*got)[0].ok {
		t.Fatalf("expected ok resolution, got %v", *got)
	}
	v := (*got)[0].viewport
	if v.Top() != 2000 || v.Bottom() != 2500 {
		t.Errorf("expected document rect offset by scroll to [2000, 2500], got [%g, %g]", v.Top(), v.Bottom())
	}
}

func TestTrackerNonDocumentNotOffset(t *testing.T) {
	tr, _, q, got := newTestTracker(map[geom.Element]geom.Rect{
		"container": geom.NewRect(0, 0, 100, 10000),
		"viewport":  geom.NewRect(0, 0, 100, 500),
	}, fixedScroll{x: 0, y: 2000})
	tr.SetElements("container", "viewport")

	tr.Request()
	q.Drain()

	if v := (*got)[0].viewport; v.Top() != 0 {
		t.Errorf("expected regular viewport to keep its rect, got top %g", v.Top())
	}
}

func TestTrackerCancel(t *testing.T) {
	tr, svc, q, got := newTestTracker(map[geom.Element]geom.Rect{
		"container": geom.NewRect(0, 0, 100, 10000),
		"viewport":  geom.NewRect(0, 0, 100, 500),
	}, nil)
	tr.SetElements("container", "viewport")

	tr.Request()
	tr.Cancel()
	tr.Cancel()

	if svc.Pending() != 0 {
		t.Errorf("expected provider to have no requests, got %d", svc.Pending())
	}
	q.Drain()
	if len(*got) != 0 {
		t.Errorf("expected no resolution after cancel, got %v", *got)
	}
}

func TestTrackerSharedProvider(t *testing.T) {
	q := loop.NewQueue()
	svc := NewService(q, staticMeasurer(map[geom.Element]geom.Rect{
		"c1": geom.NewRect(0, 0, 10, 10),
		"c2": geom.NewRect(0, 0, 10, 20),
		"vp": geom.NewRect(0, 0, 10, 5),
	}, nil))

	var first, second int
	t1 := New(svc, nil, func(_, _ geom.Rect, ok bool) {
		if ok {
			first++
		}
	})
	t2 := New(svc, nil, func(c, _ geom.Rect, ok bool) {
		if ok && c.Height == 20 {
			second++
		}
	})
	t1.SetElements("c1", "vp")
	t2.SetElements("c2", "vp")

	t1.Request()
	t2.Request()
	t1.Cancel()
	q.Drain()

	if first != 0 {
		t.Errorf("expected cancelled tracker to get nothing, got %d", first)
	}
	if second != 1 {
		t.Errorf("expected second tracker to resolve once, got %d", second)
	}
}
