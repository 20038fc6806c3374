// Package cache stores parse and render results keyed by content hash.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything; the default when caching is off
//   - [FileCache]: one JSON file per entry; used by the CLI
//   - [RedisCache]: shared cache for the API server
//
// Keys come from a [Keyer] so that callers never hand-build key strings.
// [ScopedKeyer] prefixes every key, which lets several deployments share one
// Redis database.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached results.
const (
	ParseTTL  = 24 * time.Hour
	RenderTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
// A miss is reported as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
