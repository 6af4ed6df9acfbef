// Package cache provides the TTL-bounded key/value caches used to memoize
// schedule and geocoding lookups.
package cache

import "context"

// Cache stores values by key for a bounded time. A miss is (zero, false, nil);
// an error means the backing store itself failed.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool, error)
	Set(ctx context.Context, key string, value V) error
}
