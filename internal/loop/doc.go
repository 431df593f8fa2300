// Package loop provides the single logical thread the engine runs on.
//
// All engine state is mutated from tasks executed by a Queue. Asynchronous
// collaborators (geometry providers, timers, terminal input) never touch
// engine state directly; they Post a task instead. This keeps the engine
// lock free while still allowing producers on other goroutines.
//
// Timers created through a Clock deliver their callbacks through the same
// queue. Stopping a timer on the loop thread guarantees its callback will
// not run, even if the underlying timer already fired and the callback is
// waiting in the queue.
//
// Usage:
//
//	q := loop.NewQueue()
//	clock := loop.NewClock(q)
//	clock.AfterFunc(50*time.Millisecond, func() { fmt.Println("fired") })
//	_ = q.Run(ctx)
//
// Tests use Drain and ManualClock to step the loop deterministically.
package loop
