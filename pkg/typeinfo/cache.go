package typeinfo

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache lifetimes for resolved names.
const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

type lookupResult struct {
	t  *Type
	ok bool
}

// CachedResolver memoizes lookups of another resolver, misses included.
// It is safe for concurrent use.
type CachedResolver struct {
	inner Resolver
	cache *gocache.Cache
}

var _ Resolver = (*CachedResolver)(nil)

// NewCachedResolver wraps inner with a cache whose entries expire after ttl.
func NewCachedResolver(inner Resolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: gocache.New(ttl, DefaultCleanupInterval),
	}
}

// Lookup implements Resolver.
func (c *CachedResolver) Lookup(name string) (*Type, bool) {
	key := strings.ToLower(strings.TrimSpace(name))

	if value, found := c.cache.Get(key); found {
		if res, ok := value.(lookupResult); ok {
			return res.t, res.ok
		}
	}

	t, ok := c.inner.Lookup(name)
	c.cache.SetDefault(key, lookupResult{t: t, ok: ok})
	return t, ok
}

// Len returns the number of cached names.
func (c *CachedResolver) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached entry.
func (c *CachedResolver) Flush() {
	c.cache.Flush()
}
