// Package tracker resolves the geometry of the container and viewport
// elements through an asynchronous position provider.
package tracker

import "github.com/dshills/vstack/internal/geom"

// Entry is one resolved element rectangle.
type Entry struct {
	Target geom.Element
	Rect   geom.Rect
}

// Receiver accepts batches of resolved rectangles.
// Providers compare receivers by identity, so implementations should be
// pointer types.
type Receiver interface {
	ReceivePositions(entries []Entry)
}

// Provider resolves element positions asynchronously.
type Provider interface {
	// RequestPosition asks for the position of el to be delivered to r.
	RequestPosition(el geom.Element, r Receiver)

	// CancelRequestPosition withdraws a request made with the same el and r.
	CancelRequestPosition(el geom.Element, r Receiver)
}

// Measurer returns the current bounding rectangle of an element.
type Measurer interface {
	Measure(el geom.Element) (geom.Rect, bool)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(el geom.Element) (geom.Rect, bool)

// Measure calls f(el).
func (f MeasureFunc) Measure(el geom.Element) (geom.Rect, bool) {
	return f(el)
}

// Scroller reports the scroll offset of the root scroller.
type Scroller interface {
	ScrollOffset() (x, y float64)
}
