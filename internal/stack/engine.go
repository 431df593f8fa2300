package stack

import (
	"time"

	"github.com/dshills/vstack/internal/autoupdate"
	"github.com/dshills/vstack/internal/config"
	"github.com/dshills/vstack/internal/event"
	"github.com/dshills/vstack/internal/geom"
	"github.com/dshills/vstack/internal/items"
	"github.com/dshills/vstack/internal/layout"
	"github.com/dshills/vstack/internal/logging"
	"github.com/dshills/vstack/internal/loop"
	"github.com/dshills/vstack/internal/schedule"
	"github.com/dshills/vstack/internal/tracker"
	"github.com/dshills/vstack/internal/window"
)

// Engine is a virtualizing stack over a collection of T.
type Engine[T any] struct {
	opts Options[T]
	cfg  config.Config
	log  *logging.Logger

	src      items.Source[T]
	observer *items.Observer[T]
	tracker  *tracker.Tracker
	sched    *schedule.Scheduler
	auto     *autoupdate.Controller

	connected    bool
	pendingReset bool
	resetGen     uint64

	// Most recently resolved geometry.
	containerRect *geom.Rect
	viewportRect  *geom.Rect

	first, last int
	startSpacer float64
	endSpacer   float64
	totalSpan   float64
	itemCount   int
	visible     []T

	rangeChanged event.Emitter[RangeChange]
}

// New creates a disconnected engine.
func New[T any](opts Options[T]) *Engine[T] {
	if opts.Container == geom.None {
		opts.Container = opts.Host
	}
	if opts.Clock == nil {
		opts.Clock = loop.NewClock(opts.Queue)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	e := &Engine[T]{
		opts:  opts,
		cfg:   opts.Config.Normalize().Clone(),
		log:   log.WithComponent("stack"),
		first: -1,
		last:  -1,
	}

	e.observer = items.NewObserver[T](e.handleChange)
	e.tracker = tracker.New(opts.Geometry, opts.Scroller, e.handleGeometry)
	e.sched = schedule.New(schedule.Options{
		Enabled:    func() bool { return e.cfg.Virtualize },
		Requester:  e.tracker,
		Queue:      opts.Queue,
		Clock:      opts.Clock,
		Delay:      func() time.Duration { return e.cfg.LayoutUpdateDelay },
		AllowDelay: e.cfg.AllowLayoutUpdateDelay,
		Recompute:  e.recompute,
	})
	e.auto = autoupdate.NewController(opts.Window, e.requestUpdate)

	return e
}

// Connect starts the engine: the viewport is resolved, the auto update mode
// applied and the window reset.
func (e *Engine[T]) Connect() {
	if e.connected {
		return
	}
	e.connected = true

	vp := e.resolveViewport()
	e.tracker.SetElements(e.opts.Container, vp)
	e.auto.SetViewport(vp)
	e.auto.SetMode(e.cfg.AutoUpdateMode)

	e.log.Debug("connected, viewport %s", vp)
	e.doReset()
}

// Disconnect tears the engine down. Safe to call repeatedly.
func (e *Engine[T]) Disconnect() {
	if !e.connected {
		return
	}
	e.connected = false

	e.auto.Stop()
	e.sched.Cancel()
	e.observer.Unobserve()

	e.resetGen++
	e.pendingReset = false
	e.visible = nil

	e.log.Debug("disconnected")
}

// Connected returns true between Connect and Disconnect.
func (e *Engine[T]) Connected() bool {
	return e.connected
}

// SetItems replaces the collection. While connected this queues a full
// reset; several replacements before it runs are coalesced.
func (e *Engine[T]) SetItems(src items.Source[T]) {
	e.src = src
	if e.connected {
		e.reset()
	}
}

// Items returns the collection.
func (e *Engine[T]) Items() items.Source[T] {
	return e.src
}

// Config returns a copy of the current configuration.
func (e *Engine[T]) Config() config.Config {
	return e.cfg.Clone()
}

// Apply replaces the configuration and performs the recomputations the
// change requires. Returns the effect that was applied.
func (e *Engine[T]) Apply(next config.Config) config.Effect {
	next = next.Normalize().Clone()
	effect := config.Diff(e.cfg, next)
	e.cfg = next
	e.sched.SetAllowDelay(next.AllowLayoutUpdateDelay)

	if !e.connected || effect == config.EffectNone {
		return effect
	}
	e.log.Debug("config change: %s", effect)

	if effect.Has(config.EffectReset) {
		e.reset()
	}
	if effect.Has(config.EffectViewport) {
		vp := e.resolveViewport()
		e.tracker.SetElements(e.opts.Container, vp)
		e.auto.SetViewport(vp)
	}
	if effect.Has(config.EffectAutoUpdate) {
		e.auto.SetMode(next.AutoUpdateMode)
	}
	if effect.Has(config.EffectViewport) || effect.Has(config.EffectDimensions) {
		e.updateDimensions()
	}
	return effect
}

// Update forces a recompute with freshly resolved geometry.
func (e *Engine[T]) Update() {
	e.requestUpdate()
}

// ItemPosition returns the offset of item index in the full stack, or 0
// when index is out of range.
func (e *Engine[T]) ItemPosition(index int) float64 {
	return window.ItemPosition(index, e.length(), e.cfg.ItemSpan, e.cfg.SpanMap, e.cfg.StartRegionSpan)
}

// State returns the current window.
func (e *Engine[T]) State() State {
	return State{
		First:       e.first,
		Last:        e.last,
		StartSpacer: e.startSpacer,
		EndSpacer:   e.endSpacer,
		TotalSpan:   e.totalSpan,
		Visible:     len(e.visible),
	}
}

// VisibleItems returns a copy of the rendered slice.
func (e *Engine[T]) VisibleItems() []T {
	return append([]T(nil), e.visible...)
}

// Layout returns the span layout of the current window.
func (e *Engine[T]) Layout() layout.Descriptor {
	return layout.Descriptor{
		Orientation: e.cfg.Orientation,
		StartRegion: e.cfg.StartRegionSpan,
		StartSpacer: e.startSpacer,
		ItemSpan:    e.cfg.ItemSpan,
		ItemCount:   len(e.visible),
		EndSpacer:   e.endSpacer,
		EndRegion:   e.cfg.EndRegionSpan,
	}
}

// OnRangeChanged subscribes to rendered range changes. The event does not
// propagate beyond the engine's own subscribers.
func (e *Engine[T]) OnRangeChanged(h event.Handler[RangeChange], opts ...event.SubscriptionOption) event.Subscription {
	sub := e.rangeChanged.Subscribe(h, opts...)
	e.log.Debug("range listener %s subscribed", sub.ID())
	return sub
}

// SchedulerStats returns update scheduling counters.
func (e *Engine[T]) SchedulerStats() schedule.Stats {
	return e.sched.Stats()
}

// ActiveListeners returns the number of automatic update subscriptions.
func (e *Engine[T]) ActiveListeners() int {
	return e.auto.ActiveListeners()
}

func (e *Engine[T]) length() int {
	if e.src == nil {
		return 0
	}
	return e.src.Len()
}

// resolveViewport maps the configured id to an element, falling back to
// the host.
func (e *Engine[T]) resolveViewport() geom.Element {
	if e.cfg.Viewport == "" {
		return e.opts.Host
	}
	if e.opts.Elements == nil {
		return geom.Element(e.cfg.Viewport)
	}
	if el, ok := e.opts.Elements(e.cfg.Viewport); ok && el.Valid() {
		return el
	}
	e.log.Warn("viewport %q not found, using host", e.cfg.Viewport)
	return e.opts.Host
}

func (e *Engine[T]) requestUpdate() {
	if !e.connected {
		return
	}
	e.sched.RequestUpdate()
}
