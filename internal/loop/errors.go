package loop

import "errors"

// ErrClosed is returned by Run when the queue has been closed.
var ErrClosed = errors.New("loop queue is closed")
