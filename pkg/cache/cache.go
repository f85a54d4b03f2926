// Package cache provides a small byte cache used for process-definition
// responses.
//
// Backends:
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: Redis keys with native expiry (server)
//   - [NullCache]: never stores anything (caching disabled, tests)
//
// Keys are produced by a [Keyer] so that callers never assemble them by hand.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
type Cache interface {
	// Get returns the value for key. A miss is reported with ok == false and
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// keyType returns the namespace of a key (the part before the first colon)
// for observability events.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
