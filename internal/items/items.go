// Package items defines the collection the engine windows over and the
// mutation notifications it listens to.
package items

// Source is an ordered, externally owned collection. The engine only reads
// its length and slices of it.
type Source[T any] interface {
	Len() int

	// Slice returns items [i, j). Callers must not retain or modify it.
	Slice(i, j int) []T
}

// ChangeKind identifies a collection mutation.
type ChangeKind uint8

const (
	// ChangeInsert indicates items were inserted.
	ChangeInsert ChangeKind = iota

	// ChangeRemove indicates items were removed.
	ChangeRemove

	// ChangeReplace indicates items were replaced in place.
	ChangeReplace

	// ChangeReset indicates the whole content was replaced.
	ChangeReset
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeRemove:
		return "remove"
	case ChangeReplace:
		return "replace"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes one mutation as a splice.
type Change struct {
	Kind    ChangeKind
	Index   int
	Added   int
	Removed int
}

// Notifier is implemented by sources that report mutations. Subscribe
// returns a disposer that removes the subscription.
type Notifier interface {
	Subscribe(fn func(Change)) (unsubscribe func())
}

// Slice adapts a plain slice to Source. It never notifies.
type Slice[T any] []T

// Len returns the slice length.
func (s Slice[T]) Len() int { return len(s) }

// Slice returns s[i:j].
func (s Slice[T]) Slice(i, j int) []T { return s[i:j] }

// Clamp re-anchors an inclusive range to a collection of the given length.
// Indices at or past the end move to length-1.
func Clamp(first, last, length int) (int, int) {
	if first >= length {
		first = length - 1
	}
	if last >= length {
		last = length - 1
	}
	return first, last
}

// Window copies the inclusive range [first, last] out of src. Invalid or
// empty ranges return nil.
func Window[T any](src Source[T], first, last int) []T {
	if src == nil {
		return nil
	}
	n := src.Len()
	if n == 0 || first < 0 || last < first {
		return nil
	}
	if last >= n {
		last = n - 1
	}
	if first > last {
		return nil
	}

	out := make([]T, last-first+1)
	copy(out, src.Slice(first, last+1))
	return out
}

// All copies the entire collection.
func All[T any](src Source[T]) []T {
	if src == nil {
		return nil
	}
	return Window(src, 0, src.Len()-1)
}
