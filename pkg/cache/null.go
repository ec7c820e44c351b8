package cache

import (
	"context"
	"time"
)

// NullCache stands in for the thumbnail cache when --cache is off. It never
// stores anything, and [Enabled] reports it as disabled so callers can skip
// keying and encoding thumbnails altogether.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

// Enabled reports whether c can hold entries: false for nil and NullCache.
func Enabled(c Cache) bool {
	if c == nil {
		return false
	}
	_, null := c.(*NullCache)
	return !null
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
