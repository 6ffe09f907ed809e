// Package cache provides an in-process memoisation cache for expensive
// media analysis (image captions, frame descriptions, transcripts).
//
// Keys are content fingerprints, so entries stay valid across rebuilds
// of unchanged files and a generous TTL is safe.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.MediaCache = (*Cache)(nil)

// Default configuration values.
const (
	DefaultTTL             = 24 * time.Hour
	DefaultCleanupInterval = time.Hour
)

// Cache memoises media analysis results in memory.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache with the given TTL. Zero selects the default.
func New(ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: gocache.New(ttl, DefaultCleanupInterval)}
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(key string) (string, bool) {
	value, ok := c.store.Get(key)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

// Set stores the value for key.
func (c *Cache) Set(key, value string) {
	c.store.SetDefault(key, value)
}
