package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vstack/internal/autoupdate"
	"github.com/dshills/vstack/internal/geom"
)

// Element ids answered by a Surface.
const (
	HostElement      geom.Element = "stack"
	ContainerElement geom.Element = "stack-container"

	// DocumentID names the document scroller in configuration.
	DocumentID = "document"
)

// statusRows is the number of rows reserved below the viewport.
const statusRows = 1

type registration struct {
	kind autoupdate.EventKind
	l    autoupdate.Listener
	opts autoupdate.ListenerOptions
}

// Surface adapts a tcell screen to the engine's collaborators: it measures
// elements, reports the scroll offset, dispatches global scroll and resize
// events, and creates resize signals.
type Surface struct {
	screen tcell.Screen

	rowSpan   float64
	scroll    float64
	totalSpan float64

	listeners []registration
	signals   []*resizeSignal
}

// NewSurface wraps an initialized screen. rowSpan is the span of one row,
// normally the configured item span.
func NewSurface(screen tcell.Screen, rowSpan float64) *Surface {
	s := &Surface{screen: screen}
	s.SetRowSpan(rowSpan)
	return s
}

// Screen returns the underlying screen.
func (s *Surface) Screen() tcell.Screen {
	return s.screen
}

// SetRowSpan changes the span of one row, keeping the top row in place.
func (s *Surface) SetRowSpan(span float64) {
	if span <= 0 {
		span = 1
	}
	if s.rowSpan > 0 {
		s.scroll = s.scroll / s.rowSpan * span
	}
	s.rowSpan = span
}

// RowSpan returns the span of one row.
func (s *Surface) RowSpan() float64 {
	return s.rowSpan
}

// Width returns the screen width in cells.
func (s *Surface) Width() int {
	w, _ := s.screen.Size()
	return w
}

// ViewRows returns the number of rows available to items.
func (s *Surface) ViewRows() int {
	_, h := s.screen.Size()
	return max(h-statusRows, 0)
}

// ViewSpan returns the viewport size along the scroll axis.
func (s *Surface) ViewSpan() float64 {
	return float64(s.ViewRows()) * s.rowSpan
}

// Scroll returns the scroll position.
func (s *Surface) Scroll() float64 {
	return s.scroll
}

// SetContentSpan sets the total content span used to bound scrolling.
func (s *Surface) SetContentSpan(total float64) {
	s.totalSpan = total
	s.ScrollTo(s.scroll)
}

// ScrollTo moves to pos, clamped to the content. Returns true if the
// position changed; listeners are notified when it did.
func (s *Surface) ScrollTo(pos float64) bool {
	limit := math.Max(s.totalSpan-s.ViewSpan(), 0)
	pos = math.Min(math.Max(pos, 0), limit)
	if pos == s.scroll {
		return false
	}
	s.scroll = pos
	s.dispatch(autoupdate.EventScroll)
	return true
}

// ScrollBy moves by delta.
func (s *Surface) ScrollBy(delta float64) bool {
	return s.ScrollTo(s.scroll + delta)
}

// Row returns the screen row showing the content offset pos.
func (s *Surface) Row(pos float64) int {
	return int(math.Floor((pos - s.scroll) / s.rowSpan))
}

// Lookup resolves configured viewport ids.
func (s *Surface) Lookup(id string) (geom.Element, bool) {
	switch id {
	case DocumentID:
		return geom.Document, true
	case string(HostElement):
		return HostElement, true
	default:
		return geom.None, false
	}
}

// Measure implements tracker.Measurer. Rectangles are in client
// coordinates: the host sits at the origin and the content container moves
// up as the surface scrolls.
func (s *Surface) Measure(el geom.Element) (geom.Rect, bool) {
	w := float64(s.Width())
	switch el {
	case HostElement:
		return geom.Rect{Width: w, Height: s.ViewSpan()}, true
	case ContainerElement:
		return geom.Rect{Y: -s.scroll, Width: w, Height: s.totalSpan}, true
	case geom.Document:
		// The root's rectangle excludes the scroll offset.
		return geom.Rect{Y: -s.scroll, Width: w, Height: s.ViewSpan()}, true
	default:
		return geom.Rect{}, false
	}
}

// ScrollOffset implements tracker.Scroller.
func (s *Surface) ScrollOffset() (float64, float64) {
	return 0, s.scroll
}

// AddListener implements autoupdate.EventTarget.
func (s *Surface) AddListener(kind autoupdate.EventKind, l autoupdate.Listener, opts autoupdate.ListenerOptions) {
	for _, r := range s.listeners {
		if r.kind == kind && r.l == l {
			return
		}
	}
	s.listeners = append(s.listeners, registration{kind: kind, l: l, opts: opts})
}

// RemoveListener implements autoupdate.EventTarget.
func (s *Surface) RemoveListener(kind autoupdate.EventKind, l autoupdate.Listener) {
	for i, r := range s.listeners {
		if r.kind == kind && r.l == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of registered global listeners.
func (s *Surface) Listeners() int {
	return len(s.listeners)
}

// dispatch delivers a global event, capturing listeners first.
func (s *Surface) dispatch(kind autoupdate.EventKind) {
	regs := append([]registration(nil), s.listeners...)
	for _, capture := range []bool{true, false} {
		for _, r := range regs {
			if r.kind == kind && r.opts.Capture == capture {
				r.l.HandleEvent(kind)
			}
		}
	}
}

// Resize handles a screen size change: resize signals observing the host
// or the document fire, then global resize listeners.
func (s *Surface) Resize() {
	s.ScrollTo(s.scroll)
	for _, rs := range append([]*resizeSignal(nil), s.signals...) {
		if rs.observed[HostElement] || rs.observed[geom.Document] {
			rs.callback()
		}
	}
	s.dispatch(autoupdate.EventResize)
}

// NewResizeSignal creates a resize signal bound to the surface.
func (s *Surface) NewResizeSignal(callback func()) autoupdate.ResizeSignal {
	rs := &resizeSignal{surface: s, callback: callback, observed: map[geom.Element]bool{}}
	s.signals = append(s.signals, rs)
	return rs
}

// Signals returns the number of connected resize signals.
func (s *Surface) Signals() int {
	return len(s.signals)
}

type resizeSignal struct {
	surface  *Surface
	callback func()
	observed map[geom.Element]bool
}

func (r *resizeSignal) Observe(el geom.Element) {
	r.observed[el] = true
}

func (r *resizeSignal) Unobserve(el geom.Element) {
	delete(r.observed, el)
}

func (r *resizeSignal) Disconnect() {
	clear(r.observed)
	s := r.surface
	for i, rs := range s.signals {
		if rs == r {
			s.signals = append(s.signals[:i], s.signals[i+1:]...)
			return
		}
	}
}
