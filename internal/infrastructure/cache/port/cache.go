package port

import (
	"context"
	"time"
)

// Cache is the minimal key-value contract the application uses for hot state.
// Implementations must be concurrency-safe and context-aware so callers can
// drive timeouts and cancellation.
//
// Values are stored as strings to keep the port free of serialization
// concerns; callers marshal their own payloads. Misses are reported as
// ("", ErrMiss) so callers can distinguish them from transport errors.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. Zero or negative TTL means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes one or more keys and returns the number removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// SAdd adds members to the set at key.
	SAdd(ctx context.Context, key string, members ...string) error

	// SRem removes members from the set at key.
	SRem(ctx context.Context, key string, members ...string) error

	// SMembers returns every member of the set at key; an absent set is an
	// empty result, not an error.
	SMembers(ctx context.Context, key string) ([]string, error)

	// Ping verifies connectivity with the backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way, letting callers differentiate
// misses from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
