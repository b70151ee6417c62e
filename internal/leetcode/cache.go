package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/TelmenBay/leetlog/internal/cache"
	"github.com/TelmenBay/leetlog/internal/logger"
)

// CachedFetcher serves metadata from a cache keyed by slug and fills it on
// miss. Cache failures are logged and never fail the fetch.
type CachedFetcher struct {
	inner Fetcher
	cache cache.Cache
	ttl   time.Duration
	log   *logger.Logger
}

// WithCache wraps f with a read-through cache.
func WithCache(f Fetcher, c cache.Cache, ttl time.Duration, log *logger.Logger) Fetcher {
	return &CachedFetcher{inner: f, cache: c, ttl: ttl, log: log}
}

func cacheKey(slug string) string {
	return "problem:" + slug
}

func (c *CachedFetcher) Fetch(ctx context.Context, slug string) (*Metadata, error) {
	key := cacheKey(slug)

	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var m Metadata
		if jerr := json.Unmarshal([]byte(raw), &m); jerr == nil {
			c.log.Debug("metadata cache hit", "slug", slug)
			return &m, nil
		}
		c.log.Warn("discarding corrupt cache entry", "slug", slug)
	case !errors.Is(err, cache.ErrMiss):
		c.log.Warn("metadata cache read failed", "slug", slug, "error", err)
	}

	m, err := c.inner.Fetch(ctx, slug)
	if err != nil {
		return nil, err
	}

	if b, jerr := json.Marshal(m); jerr == nil {
		if serr := c.cache.Set(ctx, key, string(b), c.ttl); serr != nil {
			c.log.Warn("metadata cache write failed", "slug", slug, "error", serr)
		}
	}
	return m, nil
}
