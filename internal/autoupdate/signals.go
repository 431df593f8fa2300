package autoupdate

import "github.com/dshills/vstack/internal/geom"

// ResizeSignal reports size changes of observed elements.
type ResizeSignal interface {
	Observe(el geom.Element)
	Unobserve(el geom.Element)
	Disconnect()
}

// EventKind identifies a global event.
type EventKind uint8

const (
	// EventScroll fires when any scroller moves.
	EventScroll EventKind = iota

	// EventResize fires when the window resizes.
	EventResize
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// ListenerOptions mirrors the registration flags of a global listener.
type ListenerOptions struct {
	Capture bool
	Passive bool
}

// Listener handles global events. Targets compare listeners by identity.
type Listener interface {
	HandleEvent(kind EventKind)
}

// EventTarget is the source of global scroll and resize events.
type EventTarget interface {
	AddListener(kind EventKind, l Listener, opts ListenerOptions)
	RemoveListener(kind EventKind, l Listener)
}
