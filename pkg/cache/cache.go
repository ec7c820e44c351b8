// Package cache stores resized source photos between runs.
//
// Walls reuse the same photos over and over: a random wall cycles through its
// source directory forever, and consecutive sequential walls usually share
// most of their inputs. Resizing a 20 megapixel photo to a 200 pixel row is
// the most expensive step of a placement, so the result can be kept here.
//
// Two implementations are provided:
//   - [FileCache]: entries as files under a directory (CLI default)
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer] and include everything that influences the
// cached pixels: the source path, its size and modification time, and the
// target height.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources.
	Close() error
}
