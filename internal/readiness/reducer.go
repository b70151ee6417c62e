package readiness

import "time"

// BestSolved returns the fastest non-expired solved log. Ties go to the most
// recently created log. ok is false when no such log exists.
func BestSolved(logs []Log, now time.Time) (best Log, ok bool) {
	for _, l := range logs {
		if l.Status != LogSolved || !IsActive(l, now) {
			continue
		}
		if !ok || l.TimeSpent < best.TimeSpent ||
			(l.TimeSpent == best.TimeSpent && l.CreatedAt.After(best.CreatedAt)) {
			best, ok = l, true
		}
	}
	return best, ok
}

// latestSolved returns the most recently created solved log, expired or not.
func latestSolved(logs []Log) (latest Log, ok bool) {
	for _, l := range logs {
		if l.Status != LogSolved {
			continue
		}
		if !ok || l.CreatedAt.After(latest.CreatedAt) {
			latest, ok = l, true
		}
	}
	return latest, ok
}

// Reduce recomputes a problem's snapshot from its logs. It runs after every
// log write or delete; prev is the snapshot currently persisted.
//
// TimeSpent is the best non-expired solved time, or nil when none is left.
// Status is solved if any log ever solved it, in_progress if any log exists.
// SolvedAt is stamped with now on the first solve, otherwise tracks the
// newest solved log, and is never cleared.
func Reduce(prev Snapshot, logs []Log, now time.Time) Snapshot {
	var next Snapshot

	if best, ok := BestSolved(logs, now); ok {
		t := best.TimeSpent
		next.TimeSpent = &t
	}

	latest, solved := latestSolved(logs)
	switch {
	case solved:
		next.Status = Solved
	case len(logs) > 0:
		next.Status = InProgress
	default:
		next.Status = NotStarted
	}

	switch {
	case solved && prev.SolvedAt == nil:
		at := now
		next.SolvedAt = &at
	case solved:
		at := latest.CreatedAt
		next.SolvedAt = &at
	default:
		next.SolvedAt = prev.SolvedAt
	}

	return next
}
