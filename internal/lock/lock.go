package lock

import "context"

// Locker is the per-order serialization point: at most one holder per key at
// a time. Release must be called exactly once by the holder. The context is
// honored before waiting begins; implementations may block uninterruptibly
// once enqueued (an in-flight payment attempt cannot be cancelled anyway).
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
