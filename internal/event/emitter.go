package event

// Emitter delivers events of type T to its subscribers in subscription
// order. Delivery is synchronous and non-bubbling: only direct subscribers
// of this emitter are called. It is not safe for concurrent use.
type Emitter[T any] struct {
	subs []*subscription[T]
}

// Subscribe registers h. A nil handler returns a cancelled subscription.
func (e *Emitter[T]) Subscribe(h Handler[T], opts ...SubscriptionOption) Subscription {
	s := &subscription[T]{id: newID(), handler: h, remove: e.remove}
	for _, opt := range opts {
		opt(&s.config)
	}
	if h == nil {
		s.state = SubscriptionStateCancelled
		return s
	}

	e.subs = append(e.subs, s)
	return s
}

// Emit delivers v to every active subscriber. Subscribers may cancel
// themselves or others during delivery.
func (e *Emitter[T]) Emit(v T) {
	snapshot := append([]*subscription[T](nil), e.subs...)
	for _, s := range snapshot {
		if s.state != SubscriptionStateActive {
			continue
		}
		if s.config.once {
			s.Cancel()
		}
		s.handler(v)
	}
}

// Len returns the number of subscriptions that have not been cancelled.
func (e *Emitter[T]) Len() int {
	return len(e.subs)
}

// Clear cancels every subscription.
func (e *Emitter[T]) Clear() {
	for _, s := range append([]*subscription[T](nil), e.subs...) {
		s.Cancel()
	}
}

func (e *Emitter[T]) remove(s *subscription[T]) {
	for i, existing := range e.subs {
		if existing == s {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}
