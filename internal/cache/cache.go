package cache

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("cache: closed")

// Cache stores opaque values with a time-to-live. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
