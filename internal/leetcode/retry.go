package leetcode

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryFetcher retries transient errors with exponential backoff and jitter.
type RetryFetcher struct {
	inner  Fetcher
	config RetryConfig
}

// WithRetry wraps a Fetcher with retry logic.
func WithRetry(f Fetcher, cfg RetryConfig) Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryFetcher{inner: f, config: cfg}
}

func (r *RetryFetcher) Fetch(ctx context.Context, slug string) (*Metadata, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		m, err := r.inner.Fetch(ctx, slug)
		if err == nil {
			return m, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) {
			return nil, err
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}
	return nil, lastErr
}

func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidURL) {
		return false
	}

	// A malformed payload gets one more try.
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limits, outages and network errors are transient.
	return true
}

func (r *RetryFetcher) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
