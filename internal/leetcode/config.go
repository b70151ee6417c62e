package leetcode

import "time"

// DefaultEndpoint is LeetCode's public GraphQL endpoint.
const DefaultEndpoint = "https://leetcode.com/graphql"

// Config holds fetcher configuration.
type Config struct {
	Endpoint  string
	UserAgent string
	// Timeout bounds a single HTTP request. Default: 15s.
	Timeout time.Duration
	// CacheTTL is how long fetched metadata stays cached. Default: 24h.
	CacheTTL time.Duration
	Retry    RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		UserAgent: "leetlog",
		Timeout:   15 * time.Second,
		CacheTTL:  24 * time.Hour,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}
