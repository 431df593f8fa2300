// Package stack implements the virtualizing stack engine.
//
// An Engine renders only the slice of a large ordered collection that
// intersects a scrollable viewport plus a buffer. It composes the pieces
// found in sibling packages:
//
//   - tracker resolves container and viewport geometry asynchronously
//   - schedule coalesces update requests and debounces recomputes
//   - window turns geometry into a rendered range and spacers
//   - autoupdate attaches resize and scroll signals per mode
//   - items observes collection mutations
//
// # Threading
//
// All engine methods must be called from the loop thread, the goroutine
// draining the Queue given in Options. Geometry resolution and debounce
// timers arrive as queued tasks, so no locks are needed.
//
// # Lifecycle
//
//	e := stack.New(stack.Options[Row]{...})
//	e.SetItems(list)
//	e.Connect()
//	defer e.Disconnect()
//
// Disconnect cancels the outstanding geometry request, clears the debounce
// timer, drops the collection subscription and releases every automatic
// update listener. Callbacks that arrive afterwards are ignored.
package stack
