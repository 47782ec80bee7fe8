// Package cache stores rendered purchase orders, resolved logo assets and
// order lookups behind one small interface.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are built by a [Keyer] so that every component names entries the same
// way. Rendered PDFs are keyed by the content hash of the input document plus
// every option that changes the output (locale, currency, time zone), so a
// changed document or option never serves a stale PDF.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(docJSON), cache.ArtifactKeyOpts{Locale: "id"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data
//	}
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Callers treat backend failures as misses and keep rendering.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	TTLArtifact = 24 * time.Hour     // rendered PDFs
	TTLAsset    = 7 * 24 * time.Hour // normalized logo images
	TTLOrder    = 5 * time.Minute    // order documents loaded from storage
)

// GetJSON loads key and decodes it into v. A miss or an undecodable entry
// returns [ErrCacheMiss].
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit || json.Unmarshal(data, v) != nil {
		return ErrCacheMiss
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
