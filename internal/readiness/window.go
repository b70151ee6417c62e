package readiness

import "time"

// LegacyLogLifetime is the validity window assumed for logs that carry no
// expiry timestamp.
const LegacyLogLifetime = 30 * 24 * time.Hour

// NewLogExpiry returns the expiry stamped on a log created at createdAt:
// one calendar month later.
func NewLogExpiry(createdAt time.Time) time.Time {
	return createdAt.AddDate(0, 1, 0)
}

// ExpiresAt returns when l stops counting toward readiness.
func ExpiresAt(l Log) time.Time {
	if l.ExpiresAt != nil {
		return *l.ExpiresAt
	}
	return legacyExpiresAt(l)
}

// legacyExpiresAt covers logs persisted before expiry was recorded.
// Once no such rows remain this path can go.
func legacyExpiresAt(l Log) time.Time {
	return l.CreatedAt.Add(LegacyLogLifetime)
}

// IsActive reports whether l is still within its validity window at now.
// The boundary is exclusive: a log expiring exactly at now is inactive.
func IsActive(l Log, now time.Time) bool {
	return ExpiresAt(l).After(now)
}

// ActiveLogs returns the non-expired subset of logs, preserving order.
func ActiveLogs(logs []Log, now time.Time) []Log {
	out := make([]Log, 0, len(logs))
	for _, l := range logs {
		if IsActive(l, now) {
			out = append(out, l)
		}
	}
	return out
}
