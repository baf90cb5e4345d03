package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultTTL is how long a cached response stays valid.
	DefaultTTL = time.Hour

	// DefaultCleanupInterval is how often expired entries are purged.
	DefaultCleanupInterval = 10 * time.Minute
)

// ResponseCache memoizes computed responses keyed by the normalized
// request parameters. Entries expire after the TTL; a corrupted or
// missing entry is simply a miss, never an error.
type ResponseCache struct {
	store *gocache.Cache
}

// New creates a cache with the given TTL and janitor interval
func New(ttl, cleanupInterval time.Duration) *ResponseCache {
	return &ResponseCache{
		store: gocache.New(ttl, cleanupInterval),
	}
}

// NewDefault creates a cache with the standard TTL and janitor interval
func NewDefault() *ResponseCache {
	return New(DefaultTTL, DefaultCleanupInterval)
}

// Key derives a stable cache key from the request parameters. The
// parts are lowercased and trimmed before hashing so trivially
// different spellings of the same request share an entry.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	sum := md5.Sum([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached value for key, if present and unexpired
func (c *ResponseCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores a value under key with the cache's default TTL
func (c *ResponseCache) Set(key string, value interface{}) {
	c.store.SetDefault(key, value)
}

// Delete removes a single entry
func (c *ResponseCache) Delete(key string) {
	c.store.Delete(key)
}

// Flush drops every entry, e.g. after a corpus reload
func (c *ResponseCache) Flush() {
	c.store.Flush()
}

// Count reports the number of live entries
func (c *ResponseCache) Count() int {
	return c.store.ItemCount()
}
