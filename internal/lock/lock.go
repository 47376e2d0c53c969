// Package lock serializes work per key, such as plan generation per user.
package lock

import "context"

// Locker acquires an exclusive lock on key, waiting until it is free or ctx
// is done. The returned func releases the lock and must be called exactly
// once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
