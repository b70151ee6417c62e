package journal

import (
	"context"
	"errors"
	"time"

	"github.com/TelmenBay/leetlog/internal/readiness"
	"github.com/TelmenBay/leetlog/internal/store"
)

// maxSnapshotAttempts bounds retries when a concurrent writer bumps the
// snapshot version between our read and write.
const maxSnapshotAttempts = 3

// mutation is one change to a user problem's logs followed by a snapshot
// recompute.
type mutation struct {
	userProblemID string
	// userID is checked against the owner; empty skips the check.
	userID string
	// apply runs inside the transaction before the recompute. nil means a
	// pure recompute.
	apply func(ctx context.Context, r store.Repo, now time.Time) error
	// changed, when set, reports whether the snapshot was written.
	changed *bool
}

// recompute applies m and rewrites the snapshot from every stored log. The
// per-problem lock serialises writers in this process; the version check
// catches writers in other processes.
func (s *Service) recompute(ctx context.Context, m mutation) (*store.UserProblem, time.Time, error) {
	unlock := s.locks.Lock(m.userProblemID)
	defer unlock()

	var (
		up  *store.UserProblem
		now time.Time
		err error
	)
	for attempt := 1; attempt <= maxSnapshotAttempts; attempt++ {
		now = s.clock()
		up, err = s.recomputeOnce(ctx, m, now)
		if !errors.Is(err, store.ErrConflict) {
			return up, now, err
		}
		s.log.Warn("snapshot version conflict", "user_problem_id", m.userProblemID, "attempt", attempt)
	}
	return nil, now, err
}

func (s *Service) recomputeOnce(ctx context.Context, m mutation, now time.Time) (*store.UserProblem, error) {
	var up *store.UserProblem
	err := s.store.InTx(ctx, func(r store.Repo) error {
		var err error
		up, err = r.GetUserProblem(ctx, m.userProblemID)
		if err != nil {
			return translate(err)
		}
		if m.userID != "" && up.UserID != m.userID {
			return ErrForbidden
		}
		if m.apply != nil {
			if err := m.apply(ctx, r, now); err != nil {
				return err
			}
		}

		logs, err := r.ListLogs(ctx, up.ID, 0)
		if err != nil {
			return err
		}
		up.Logs = logs

		prev := up.Snapshot()
		next := readiness.Reduce(prev, store.Entries(logs), now)
		if m.apply == nil && sameSnapshot(prev, next) {
			return nil
		}
		if err := r.UpdateSnapshot(ctx, up.ID, next, up.Version, now); err != nil {
			return err
		}
		up.Status, up.TimeSpent, up.SolvedAt = next.Status, next.TimeSpent, next.SolvedAt
		up.Version++
		up.UpdatedAt = now
		s.log.Debug("snapshot recomputed",
			"user_problem_id", up.ID, "status", next.Status, "version", up.Version)
		if m.changed != nil {
			*m.changed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return up, nil
}

func sameSnapshot(a, b readiness.Snapshot) bool {
	if a.Status != b.Status {
		return false
	}
	if (a.TimeSpent == nil) != (b.TimeSpent == nil) {
		return false
	}
	if a.TimeSpent != nil && *a.TimeSpent != *b.TimeSpent {
		return false
	}
	if (a.SolvedAt == nil) != (b.SolvedAt == nil) {
		return false
	}
	return a.SolvedAt == nil || a.SolvedAt.Equal(*b.SolvedAt)
}
