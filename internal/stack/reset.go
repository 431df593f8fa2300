package stack

import (
	"github.com/dshills/vstack/internal/geom"
	"github.com/dshills/vstack/internal/items"
	"github.com/dshills/vstack/internal/window"
)

// reset queues a full reset unless one is already queued.
func (e *Engine[T]) reset() {
	if e.pendingReset {
		return
	}
	e.pendingReset = true

	gen := e.resetGen
	e.opts.Queue.Post(func() {
		if gen != e.resetGen || !e.connected {
			return
		}
		e.doReset()
	})
}

func (e *Engine[T]) doReset() {
	e.pendingReset = false
	e.sched.Cancel()
	e.observer.Observe(e.src)

	if e.cfg.Virtualize {
		e.attachResizeSignal()
		e.updateDimensions()
		return
	}

	e.auto.Detach()
	e.materializeAll()
	e.updateDimensions()
	e.render()
}

func (e *Engine[T]) attachResizeSignal() {
	if e.auto.Attached() || e.opts.NewResizeSignal == nil {
		return
	}
	e.auto.Attach(e.opts.NewResizeSignal(e.requestUpdate))
}

// materializeAll renders the whole collection.
func (e *Engine[T]) materializeAll() {
	e.visible = items.All(e.src)
	e.startSpacer, e.endSpacer = 0, 0
	if len(e.visible) == 0 {
		e.updateRenderedRange(-1, -1)
		return
	}
	e.updateRenderedRange(0, len(e.visible)-1)
}

// updateDimensions recomputes the total span and requests new geometry.
func (e *Engine[T]) updateDimensions() {
	e.itemCount = e.length()
	e.totalSpan = window.TotalSpan(e.itemCount, e.cfg.ItemSpan, e.cfg.SpanMap, e.cfg.StartRegionSpan, e.cfg.EndRegionSpan)
	e.requestUpdate()
}

// handleChange follows a mutation of the observed collection.
func (e *Engine[T]) handleChange(c items.Change) {
	if !e.connected {
		return
	}
	n := e.length()
	e.log.Debug("items %s at %d (+%d -%d), length %d", c.Kind, c.Index, c.Added, c.Removed, n)

	if !e.cfg.Virtualize {
		e.materializeAll()
		e.updateDimensions()
		e.render()
		return
	}

	first, last := items.Clamp(e.first, e.last, n)
	e.visible = items.Window(e.src, first, last)
	e.setSpacers(first, last, n)
	e.updateRenderedRange(first, last)
	e.render()

	if e.itemCount != n {
		e.updateDimensions()
		return
	}
	e.requestUpdate()
}

// handleGeometry receives resolved geometry from the tracker.
func (e *Engine[T]) handleGeometry(container, viewport geom.Rect, ok bool) {
	if !e.connected || !e.sched.Pending() {
		return
	}
	if ok {
		e.containerRect = &container
		e.viewportRect = &viewport
	} else {
		e.log.Debug("geometry not ready, skipping update")
	}
	e.sched.Resolve(ok)
}

// recompute runs the window calculation with the latest geometry.
func (e *Engine[T]) recompute() {
	if !e.connected {
		return
	}

	res := window.Calculate(window.Input{
		Length:          e.length(),
		ItemSpan:        e.cfg.ItemSpan,
		StartRegionSpan: e.cfg.StartRegionSpan,
		EndRegionSpan:   e.cfg.EndRegionSpan,
		Buffer:          e.cfg.ViewportBuffer,
		Orientation:     e.cfg.Orientation,
		Container:       e.containerRect,
		Viewport:        e.viewportRect,
		SpanMap:         e.cfg.SpanMap,
	})

	e.visible = items.Window(e.src, res.First, res.Last)
	e.startSpacer, e.endSpacer = res.StartSpacer, res.EndSpacer
	e.updateRenderedRange(res.First, res.Last)
	e.render()
}

func (e *Engine[T]) setSpacers(first, last, n int) {
	if first < 0 || last < 0 {
		e.startSpacer, e.endSpacer = 0, 0
		return
	}
	e.startSpacer = float64(first) * e.cfg.ItemSpan
	e.endSpacer = float64(n-last-1) * e.cfg.ItemSpan
}

// updateRenderedRange records the range and raises the change event when
// it moved.
func (e *Engine[T]) updateRenderedRange(first, last int) {
	if first == e.first && last == e.last {
		return
	}
	e.first, e.last = first, last
	e.log.Debug("rendered range %d..%d", first, last)
	e.rangeChanged.Emit(RangeChange{First: first, Last: last})
}

func (e *Engine[T]) render() {
	if e.opts.Sink == nil {
		return
	}
	e.opts.Sink.Render(Frame[T]{
		Items:  e.VisibleItems(),
		First:  e.first,
		Last:   e.last,
		Layout: e.Layout(),
	})
}
