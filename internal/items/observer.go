package items

// Observer follows the mutation notifications of whatever source it is
// currently observing. Sources that do not implement Notifier are observed
// passively: nothing is reported.
type Observer[T any] struct {
	src     Source[T]
	handler func(Change)
	unsub   func()
}

// NewObserver creates an observer that forwards changes to handler.
func NewObserver[T any](handler func(Change)) *Observer[T] {
	return &Observer[T]{handler: handler}
}

// Observe switches to src, unsubscribing from the previous source first.
func (o *Observer[T]) Observe(src Source[T]) {
	o.Unobserve()
	o.src = src

	if src == nil {
		return
	}
	if n, ok := src.(Notifier); ok {
		o.unsub = n.Subscribe(o.forward)
	}
}

// Unobserve drops the current subscription. Safe to call repeatedly.
func (o *Observer[T]) Unobserve() {
	if o.unsub != nil {
		o.unsub()
		o.unsub = nil
	}
}

// Source returns the observed source.
func (o *Observer[T]) Source() Source[T] {
	return o.src
}

// Active returns true while subscribed to a notifier.
func (o *Observer[T]) Active() bool {
	return o.unsub != nil
}

func (o *Observer[T]) forward(c Change) {
	if o.unsub == nil || o.handler == nil {
		return
	}
	o.handler(c)
}
