// Package event provides typed, single-threaded event emission with
// cancellable subscriptions.
package event

import "github.com/google/uuid"

// SubscriptionState represents the state of a subscription.
type SubscriptionState uint8

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription controls the lifecycle of one handler registration.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// State returns the current subscription state.
	State() SubscriptionState

	// Pause temporarily stops event delivery to this subscription.
	Pause()

	// Resume restarts event delivery after a pause.
	Resume()

	// Cancel permanently cancels the subscription. Safe to call repeatedly.
	Cancel()
}

// Handler receives events of type T.
type Handler[T any] func(T)

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscriptionConfig)

type subscriptionConfig struct {
	once bool
}

// WithOnce cancels the subscription after its first delivery.
func WithOnce() SubscriptionOption {
	return func(c *subscriptionConfig) {
		c.once = true
	}
}

type subscription[T any] struct {
	id      string
	handler Handler[T]
	config  subscriptionConfig
	state   SubscriptionState
	remove  func(*subscription[T])
}

func (s *subscription[T]) ID() string {
	return s.id
}

func (s *subscription[T]) State() SubscriptionState {
	return s.state
}

func (s *subscription[T]) Pause() {
	if s.state == SubscriptionStateActive {
		s.state = SubscriptionStatePaused
	}
}

func (s *subscription[T]) Resume() {
	if s.state == SubscriptionStatePaused {
		s.state = SubscriptionStateActive
	}
}

func (s *subscription[T]) Cancel() {
	if s.state == SubscriptionStateCancelled {
		return
	}
	s.state = SubscriptionStateCancelled
	if s.remove != nil {
		s.remove(s)
	}
}

func newID() string {
	return uuid.New().String()
}
