package leetcode

import (
	"context"
	"time"

	"github.com/TelmenBay/leetlog/internal/logger"
)

// LoggingFetcher records every upstream request.
type LoggingFetcher struct {
	inner Fetcher
	log   *logger.Logger
}

// WithLogging wraps f with request logging.
func WithLogging(f Fetcher, log *logger.Logger) Fetcher {
	return &LoggingFetcher{inner: f, log: log}
}

func (l *LoggingFetcher) Fetch(ctx context.Context, slug string) (*Metadata, error) {
	start := time.Now()
	m, err := l.inner.Fetch(ctx, slug)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		l.log.Warn("leetcode fetch failed", "slug", slug, "duration_ms", latency, "error", err)
		return nil, err
	}
	l.log.Info("leetcode fetch", "slug", slug, "external_id", m.ExternalID, "duration_ms", latency)
	return m, nil
}
