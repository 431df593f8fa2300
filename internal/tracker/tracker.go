package tracker

import "github.com/dshills/vstack/internal/geom"

// ResolveFunc receives the outcome of a geometry request. ok is false when
// the batch did not contain both the container and the viewport.
type ResolveFunc func(container, viewport geom.Rect, ok bool)

// Tracker owns the single outstanding container+viewport request of one
// engine.
type Tracker struct {
	provider  Provider
	scroller  Scroller
	onResolve ResolveFunc

	container geom.Element
	viewport  geom.Element

	// requested holds the elements registered with the provider so Cancel
	// withdraws exactly those, even if SetElements ran in between.
	requested []geom.Element
}

// New creates a tracker. scroller may be nil when the document is never
// used as the viewport.
func New(provider Provider, scroller Scroller, onResolve ResolveFunc) *Tracker {
	return &Tracker{
		provider:  provider,
		scroller:  scroller,
		onResolve: onResolve,
	}
}

// SetElements sets the container and viewport identities.
func (t *Tracker) SetElements(container, viewport geom.Element) {
	t.container = container
	t.viewport = viewport
}

// Container returns the container element.
func (t *Tracker) Container() geom.Element {
	return t.container
}

// Viewport returns the viewport element.
func (t *Tracker) Viewport() geom.Element {
	return t.viewport
}

// Request asks the provider for both rectangles.
func (t *Tracker) Request() {
	if t.provider == nil {
		return
	}
	t.Cancel()

	for _, el := range []geom.Element{t.container, t.viewport} {
		if !el.Valid() {
			continue
		}
		t.provider.RequestPosition(el, t)
		t.requested = append(t.requested, el)
	}
}

// Cancel withdraws any outstanding request. Safe to call repeatedly.
func (t *Tracker) Cancel() {
	if t.provider == nil {
		t.requested = nil
		return
	}
	for _, el := range t.requested {
		t.provider.CancelRequestPosition(el, t)
	}
	t.requested = nil
}

// Outstanding returns true while a request is registered with the provider.
func (t *Tracker) Outstanding() bool {
	return len(t.requested) > 0
}

// ReceivePositions implements Receiver.
func (t *Tracker) ReceivePositions(entries []Entry) {
	t.settle(entries)

	var (
		container, viewport         geom.Rect
		haveContainer, haveViewport bool
	)
	for _, e := range entries {
		if e.Target == t.container && !haveContainer {
			container = e.Rect
			haveContainer = true
		}
		if e.Target == t.viewport && !haveViewport {
			viewport = e.Rect
			haveViewport = true
		}
	}

	if !haveContainer || !haveViewport {
		t.resolve(geom.Rect{}, geom.Rect{}, false)
		return
	}

	if t.viewport == geom.Document && t.scroller != nil {
		x, y := t.scroller.ScrollOffset()
		viewport = viewport.Offset(x, y)
	}

	t.resolve(container, viewport, true)
}

// settle drops the registrations answered by entries.
func (t *Tracker) settle(entries []Entry) {
	kept := t.requested[:0]
	for _, el := range t.requested {
		answered := false
		for _, e := range entries {
			if e.Target == el {
				answered = true
				break
			}
		}
		if !answered {
			kept = append(kept, el)
		}
	}
	t.requested = kept
}

func (t *Tracker) resolve(container, viewport geom.Rect, ok bool) {
	if t.onResolve != nil {
		t.onResolve(container, viewport, ok)
	}
}
