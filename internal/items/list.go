package items

// List is an observable slice. It is not safe for concurrent use; mutate it
// from the loop thread.
type List[T any] struct {
	items     []T
	listeners []*listener
}

type listener struct {
	fn func(Change)
}

// NewList creates a list holding items. The slice is used directly.
func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: items}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Slice returns items [i, j).
func (l *List[T]) Slice(i, j int) []T {
	return l.items[i:j]
}

// Items returns the backing slice.
func (l *List[T]) Items() []T {
	return l.items
}

// At returns the item at index i, or the zero value if out of bounds.
func (l *List[T]) At(i int) T {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero
	}
	return l.items[i]
}

// Append adds items to the end.
func (l *List[T]) Append(items ...T) *List[T] {
	if len(items) == 0 {
		return l
	}
	idx := len(l.items)
	l.items = append(l.items, items...)
	l.notify(Change{Kind: ChangeInsert, Index: idx, Added: len(items)})
	return l
}

// Insert inserts items at index i, clamped to the valid range.
func (l *List[T]) Insert(i int, items ...T) *List[T] {
	if len(items) == 0 {
		return l
	}
	if i < 0 {
		i = 0
	}
	if i > len(l.items) {
		i = len(l.items)
	}

	grown := make([]T, 0, len(l.items)+len(items))
	grown = append(grown, l.items[:i]...)
	grown = append(grown, items...)
	grown = append(grown, l.items[i:]...)
	l.items = grown

	l.notify(Change{Kind: ChangeInsert, Index: i, Added: len(items)})
	return l
}

// RemoveAt removes count items starting at index i. Out of range requests
// are trimmed.
func (l *List[T]) RemoveAt(i, count int) *List[T] {
	if i < 0 || i >= len(l.items) || count <= 0 {
		return l
	}
	if i+count > len(l.items) {
		count = len(l.items) - i
	}

	l.items = append(l.items[:i], l.items[i+count:]...)
	l.notify(Change{Kind: ChangeRemove, Index: i, Removed: count})
	return l
}

// Replace overwrites the item at index i.
func (l *List[T]) Replace(i int, item T) *List[T] {
	if i < 0 || i >= len(l.items) {
		return l
	}
	l.items[i] = item
	l.notify(Change{Kind: ChangeReplace, Index: i, Added: 1, Removed: 1})
	return l
}

// Set replaces the whole content.
func (l *List[T]) Set(items []T) *List[T] {
	removed := len(l.items)
	l.items = items
	l.notify(Change{Kind: ChangeReset, Index: 0, Added: len(items), Removed: removed})
	return l
}

// Clear removes every item.
func (l *List[T]) Clear() *List[T] {
	if len(l.items) == 0 {
		return l
	}
	removed := len(l.items)
	l.items = nil
	l.notify(Change{Kind: ChangeRemove, Index: 0, Removed: removed})
	return l
}

// Subscribe implements Notifier.
func (l *List[T]) Subscribe(fn func(Change)) func() {
	ln := &listener{fn: fn}
	l.listeners = append(l.listeners, ln)

	return func() {
		for i, existing := range l.listeners {
			if existing == ln {
				l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (l *List[T]) Subscribers() int {
	return len(l.listeners)
}

func (l *List[T]) notify(c Change) {
	// Copy so handlers may unsubscribe while being notified
	snapshot := append([]*listener(nil), l.listeners...)
	for _, ln := range snapshot {
		ln.fn(c)
	}
}
