package leetcode

import (
	"github.com/TelmenBay/leetlog/internal/cache"
	"github.com/TelmenBay/leetlog/internal/logger"
)

// NewFetcher builds the production fetcher. c may be nil to disable caching.
//
// Call order: caller → cache → retry → logging → client.
func NewFetcher(cfg Config, c cache.Cache, log *logger.Logger) Fetcher {
	var f Fetcher = NewClient(cfg)
	f = WithLogging(f, log)
	f = WithRetry(f, cfg.Retry)
	if c != nil {
		f = WithCache(f, c, cfg.CacheTTL, log)
	}
	return f
}
