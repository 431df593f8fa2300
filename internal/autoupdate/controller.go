package autoupdate

import "github.com/dshills/vstack/internal/geom"

// Controller applies a Mode by attaching and detaching subscriptions.
// It must be used from the loop thread only.
type Controller struct {
	mode     Mode
	viewport geom.Element
	resize   ResizeSignal
	target   EventTarget
	request  func()

	// What is currently attached, so teardown releases exactly that.
	observed  geom.Element
	listening bool
}

// NewController creates a controller in manual mode. target may be nil
// when no global events exist; request is invoked on every global event.
func NewController(target EventTarget, request func()) *Controller {
	return &Controller{target: target, request: request}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Viewport returns the viewport element.
func (c *Controller) Viewport() geom.Element {
	return c.viewport
}

// Attach sets the resize signal and re-applies the current mode.
func (c *Controller) Attach(rs ResizeSignal) {
	if c.resize == rs {
		return
	}
	c.Detach()
	c.resize = rs
	c.transition(c.mode, c.mode)
}

// Detach releases the resize signal entirely.
func (c *Controller) Detach() {
	if c.resize == nil {
		return
	}
	c.stopViewportObserver()
	c.resize.Disconnect()
	c.resize = nil
}

// Attached returns true if a resize signal is attached.
func (c *Controller) Attached() bool {
	return c.resize != nil
}

// SetViewport replaces the viewport element and re-applies the current
// mode against it.
func (c *Controller) SetViewport(el geom.Element) {
	if el == c.viewport {
		return
	}
	c.teardown(c.mode)
	c.viewport = el
	c.transition(c.mode, c.mode)
}

// SetMode switches to next.
func (c *Controller) SetMode(next Mode) {
	prev := c.mode
	c.mode = next
	c.transition(prev, next)
}

// Stop releases every subscription. The mode is kept so a later Attach
// re-applies it.
func (c *Controller) Stop() {
	c.teardown(c.mode)
	c.Detach()
}

// ActiveListeners returns the number of subscriptions currently attached:
// the viewport observation plus each global listener.
func (c *Controller) ActiveListeners() int {
	n := 0
	if c.observed.Valid() {
		n++
	}
	if c.listening {
		n += 2
	}
	return n
}

// HandleEvent implements Listener.
func (c *Controller) HandleEvent(EventKind) {
	if c.request != nil {
		c.request()
	}
}

// transition tears down prev's subscriptions and establishes next's.
func (c *Controller) transition(prev, next Mode) {
	c.teardown(prev)

	if !c.viewport.Valid() {
		return
	}
	if next.observesViewport() {
		c.startViewportObserver()
	}
	if next.listensGlobally() {
		c.startGlobalListeners()
	}
}

func (c *Controller) teardown(prev Mode) {
	if prev.listensGlobally() {
		c.stopGlobalListeners()
	}
	if prev.observesViewport() {
		c.stopViewportObserver()
	}
}

func (c *Controller) startViewportObserver() {
	if c.resize == nil || c.observed.Valid() {
		return
	}
	c.resize.Observe(c.viewport)
	c.observed = c.viewport
}

func (c *Controller) stopViewportObserver() {
	if c.resize == nil || !c.observed.Valid() {
		return
	}
	c.resize.Unobserve(c.observed)
	c.observed = geom.None
}

func (c *Controller) startGlobalListeners() {
	if c.target == nil || c.listening {
		return
	}
	c.target.AddListener(EventResize, c, ListenerOptions{Passive: true})
	c.target.AddListener(EventScroll, c, ListenerOptions{Passive: true, Capture: true})
	c.listening = true
}

func (c *Controller) stopGlobalListeners() {
	if c.target == nil || !c.listening {
		return
	}
	c.target.RemoveListener(EventResize, c)
	c.target.RemoveListener(EventScroll, c)
	c.listening = false
}
