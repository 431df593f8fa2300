package stack

import (
	"github.com/dshills/vstack/internal/autoupdate"
	"github.com/dshills/vstack/internal/config"
	"github.com/dshills/vstack/internal/geom"
	"github.com/dshills/vstack/internal/layout"
	"github.com/dshills/vstack/internal/logging"
	"github.com/dshills/vstack/internal/loop"
	"github.com/dshills/vstack/internal/tracker"
)

// Frame is one materialization of the window handed to the Sink.
type Frame[T any] struct {
	// Items is the rendered slice. The sink owns it.
	Items []T

	// First and Last are the inclusive indices of Items in the collection.
	First int
	Last  int

	Layout layout.Descriptor
}

// Sink renders frames.
type Sink[T any] interface {
	Render(f Frame[T])
}

// SinkFunc adapts a function to Sink.
type SinkFunc[T any] func(f Frame[T])

// Render calls fn(f).
func (fn SinkFunc[T]) Render(f Frame[T]) {
	fn(f)
}

// RangeChange is raised when the rendered range moves.
type RangeChange struct {
	First int
	Last  int
}

// State is a snapshot of the computed window.
type State struct {
	First       int
	Last        int
	StartSpacer float64
	EndSpacer   float64
	TotalSpan   float64
	Visible     int
}

// ElementLookup resolves an element id. It returns false when no element
// has that id.
type ElementLookup func(id string) (geom.Element, bool)

// ResizeSignalFactory creates a resize signal that invokes callback when
// any observed element changes size.
type ResizeSignalFactory func(callback func()) autoupdate.ResizeSignal

// Options configures an Engine.
type Options[T any] struct {
	// Config is the initial configuration, usually built from config.Default.
	Config config.Config

	// Host is the stack element itself. It is the viewport when none is
	// configured or the configured id cannot be found.
	Host geom.Element

	// Container is the element holding the items. Defaults to Host.
	Container geom.Element

	// Geometry resolves element rectangles. It may be shared by many
	// engines.
	Geometry tracker.Provider

	// Elements resolves the configured viewport id. Nil treats the id as
	// the element itself.
	Elements ElementLookup

	// Scroller reports the document scroll offset.
	Scroller tracker.Scroller

	// NewResizeSignal creates the viewport resize signal. Nil disables
	// resize observation.
	NewResizeSignal ResizeSignalFactory

	// Window receives the global scroll and resize listeners.
	Window autoupdate.EventTarget

	// Queue runs deferred work. Required.
	Queue loop.Poster

	// Clock runs the debounce timer. Defaults to a real clock on Queue.
	Clock loop.Clock

	Sink   Sink[T]
	Logger *logging.Logger
}
