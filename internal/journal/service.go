// Package journal implements the practice journal: adding problems, recording
// attempts, and the dashboard and analytics reads built on readiness.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TelmenBay/leetlog/internal/analytics"
	"github.com/TelmenBay/leetlog/internal/leetcode"
	"github.com/TelmenBay/leetlog/internal/logger"
	"github.com/TelmenBay/leetlog/internal/readiness"
	"github.com/TelmenBay/leetlog/internal/store"
)

const (
	// DashboardLogFetch is how many recent logs a read loads per problem.
	DashboardLogFetch = 20
	// DashboardLogKeep is how many active logs a read keeps per problem.
	DashboardLogKeep = 10

	// bulkDeleteWorkers bounds parallel deletions.
	bulkDeleteWorkers = 4
)

// Store is the storage the service needs.
type Store interface {
	store.Repo
	InTx(ctx context.Context, fn func(store.Repo) error) error
}

// Service coordinates storage, metadata fetching and the readiness rules.
type Service struct {
	store    Store
	fetcher  leetcode.Fetcher
	log      *logger.Logger
	now      func() time.Time
	taxonomy analytics.Taxonomy
	locks    *keyedMutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTaxonomy overrides the analytics categories.
func WithTaxonomy(t analytics.Taxonomy) Option {
	return func(s *Service) { s.taxonomy = t }
}

// NewService creates a Service.
func NewService(st Store, f leetcode.Fetcher, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:    st,
		fetcher:  f,
		log:      log,
		now:      time.Now,
		taxonomy: analytics.DefaultTaxonomy(),
		locks:    newKeyedMutex(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// AddProblem resolves url to problem metadata, caches the problem and adds
// it to the user's list.
func (s *Service) AddProblem(ctx context.Context, userID, url string) (*UserProblemView, error) {
	slug, err := leetcode.ParseSlug(url)
	if err != nil {
		return nil, err
	}
	meta, err := s.fetcher.Fetch(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetch problem %s: %w", slug, err)
	}

	now := s.clock()
	p, err := s.ensureProblem(ctx, meta, now)
	if err != nil {
		return nil, err
	}

	up := &store.UserProblem{
		UserID:    userID,
		ProblemID: p.ID,
		Status:    readiness.NotStarted,
		CreatedAt: now,
	}
	if err := s.store.CreateUserProblem(ctx, up); err != nil {
		return nil, translate(err)
	}
	up.Problem = p

	s.log.Info("problem added", "user_id", userID, "user_problem_id", up.ID, "external_id", p.ExternalID)
	v := newUserProblemView(up, now)
	return &v, nil
}

// ensureProblem returns the cached problem for meta, creating it on first
// reference and backfilling tags and description when they were empty.
func (s *Service) ensureProblem(ctx context.Context, meta *leetcode.Metadata, now time.Time) (*store.Problem, error) {
	p, err := s.store.GetProblemByExternalID(ctx, meta.ExternalID)
	switch {
	case err == nil:
		tags, desc := p.Tags, p.Description
		if len(tags) == 0 && len(meta.Tags) > 0 {
			tags = meta.Tags
		}
		if desc == "" && meta.Description != "" {
			desc = meta.Description
		}
		if len(tags) != len(p.Tags) || desc != p.Description {
			if err := s.store.BackfillProblem(ctx, p.ID, tags, desc, now); err != nil {
				return nil, err
			}
			p.Tags, p.Description = tags, desc
		}
		return p, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	p = &store.Problem{
		ExternalID:  meta.ExternalID,
		Title:       meta.Title,
		Slug:        meta.Slug,
		Difficulty:  readiness.ParseDifficulty(meta.Difficulty),
		Tags:        meta.Tags,
		Description: meta.Description,
		PaidOnly:    meta.PaidOnly,
		CreatedAt:   now,
	}
	err = s.store.CreateProblem(ctx, p)
	if errors.Is(err, store.ErrDuplicate) {
		// Another request cached it first.
		return s.store.GetProblemByExternalID(ctx, meta.ExternalID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AttemptInput is a raw log submission. TimeSpent is the decoded JSON value
// and is coerced, never rejected.
type AttemptInput struct {
	TimeSpent any
	Status    string
	Notes     string
	Solution  string
}

// SubmitLog records an attempt and recomputes the problem's snapshot.
func (s *Service) SubmitLog(ctx context.Context, userID, userProblemID string, in AttemptInput) (*SubmitResult, error) {
	a := readiness.NormalizeAttempt(in.TimeSpent, in.Status, in.Notes, in.Solution)

	var created store.Log
	up, now, err := s.recompute(ctx, mutation{
		userProblemID: userProblemID,
		userID:        userID,
		apply: func(ctx context.Context, r store.Repo, now time.Time) error {
			exp := readiness.NewLogExpiry(now)
			created = store.Log{
				UserProblemID: userProblemID,
				TimeSpent:     a.TimeSpent,
				Status:        a.Status,
				Notes:         a.Notes,
				Solution:      a.Solution,
				CreatedAt:     now,
				ExpiresAt:     &exp,
			}
			return r.CreateLog(ctx, &created)
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("log recorded",
		"user_problem_id", userProblemID, "log_id", created.ID,
		"status", created.Status, "time_spent", created.TimeSpent)
	return &SubmitResult{
		Log:         newLogView(created, now),
		UserProblem: newUserProblemView(up, now),
	}, nil
}

// DeleteLog removes one log and recomputes the snapshot from what remains.
func (s *Service) DeleteLog(ctx context.Context, userID, logID string) (*UserProblemView, error) {
	l, err := s.store.GetLog(ctx, logID)
	if err != nil {
		return nil, translate(err)
	}

	up, now, err := s.recompute(ctx, mutation{
		userProblemID: l.UserProblemID,
		userID:        userID,
		apply: func(ctx context.Context, r store.Repo, _ time.Time) error {
			return translate(r.DeleteLog(ctx, logID))
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("log deleted", "user_problem_id", l.UserProblemID, "log_id", logID)
	v := newUserProblemView(up, now)
	return &v, nil
}

// DeleteUserProblem removes a problem from the user's list with its logs.
func (s *Service) DeleteUserProblem(ctx context.Context, userID, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	err := s.store.InTx(ctx, func(r store.Repo) error {
		up, err := r.GetUserProblem(ctx, id)
		if err != nil {
			return translate(err)
		}
		if up.UserID != userID {
			return ErrForbidden
		}
		return translate(r.DeleteUserProblem(ctx, id))
	})
	if err != nil {
		return err
	}
	s.log.Info("problem removed", "user_id", userID, "user_problem_id", id)
	return nil
}

// DeleteUserProblems removes several problems in parallel. Ids that no
// longer exist are skipped; any other failure aborts the batch. It returns
// how many rows were removed.
func (s *Service) DeleteUserProblems(ctx context.Context, userID string, ids []string) (int, error) {
	deleted := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkDeleteWorkers)
	for i, id := range ids {
		g.Go(func() error {
			err := s.DeleteUserProblem(gctx, userID, id)
			switch {
			case err == nil:
				deleted[i] = true
			case errors.Is(err, ErrNotFound):
			default:
				return fmt.Errorf("delete %s: %w", id, err)
			}
			return nil
		})
	}
	err := g.Wait()

	n := 0
	for _, ok := range deleted {
		if ok {
			n++
		}
	}
	return n, err
}

// GetUserProblem returns one of the user's problems.
func (s *Service) GetUserProblem(ctx context.Context, userID, id string) (*UserProblemView, error) {
	up, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.store.ListLogs(ctx, id, DashboardLogFetch)
	if err != nil {
		return nil, err
	}
	up.Logs = logs
	v := newUserProblemView(up, s.clock())
	return &v, nil
}

// Logs returns the full history of one problem, newest first, each entry
// flagged active or expired.
func (s *Service) Logs(ctx context.Context, userID, userProblemID string) ([]LogView, error) {
	if _, err := s.owned(ctx, userID, userProblemID); err != nil {
		return nil, err
	}
	logs, err := s.store.ListLogs(ctx, userProblemID, 0)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	out := make([]LogView, len(logs))
	for i, l := range logs {
		out[i] = newLogView(l, now)
	}
	return out, nil
}

func (s *Service) owned(ctx context.Context, userID, id string) (*store.UserProblem, error) {
	up, err := s.store.GetUserProblem(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if up.UserID != userID {
		return nil, ErrForbidden
	}
	return up, nil
}

// Dashboard returns every tracked problem, newest first, classified now.
func (s *Service) Dashboard(ctx context.Context, userID string) ([]UserProblemView, error) {
	ups, err := s.store.ListUserProblems(ctx, userID, DashboardLogFetch)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	out := make([]UserProblemView, len(ups))
	for i, up := range ups {
		out[i] = newUserProblemView(up, now)
	}
	return out, nil
}

// Analytics aggregates the dashboard into category scores and a GPA.
func (s *Service) Analytics(ctx context.Context, userID string) (*analytics.Summary, error) {
	views, err := s.Dashboard(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := analytics.Summarize(AnalyticsInput(views), s.taxonomy)
	return &sum, nil
}

// AnalyticsInput projects dashboard rows onto analytics problems.
func AnalyticsInput(views []UserProblemView) []analytics.Problem {
	out := make([]analytics.Problem, len(views))
	for i, v := range views {
		out[i] = analytics.Problem{
			Tags:       v.Problem.Tags,
			Difficulty: v.Problem.Difficulty,
			TimeSpent:  v.TimeSpent,
			Readiness:  v.Readiness,
		}
	}
	return out
}

// Preferences returns the user's stored preferences or defaults.
func (s *Service) Preferences(ctx context.Context, userID string) (*store.Preferences, error) {
	return s.store.GetPreferences(ctx, userID)
}

// SavePreferences stores the user's preferences.
func (s *Service) SavePreferences(ctx context.Context, userID string, skipDeleteConfirm bool) (*store.Preferences, error) {
	p := &store.Preferences{UserID: userID, SkipDeleteConfirm: skipDeleteConfirm, UpdatedAt: s.clock()}
	if err := s.store.SavePreferences(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Sweep re-runs the reducer for every problem holding a best time so that
// best times whose logs have since expired are cleared. It returns how many
// snapshots changed.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	ids, err := s.store.ListSolvedUserProblemIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list solved: %w", err)
	}

	changed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		var wrote bool
		_, _, err := s.recompute(ctx, mutation{userProblemID: id, changed: &wrote})
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return changed, fmt.Errorf("sweep %s: %w", id, err)
		}
		if wrote {
			changed++
		}
	}
	if changed > 0 {
		s.log.Info("expiry sweep", "checked", len(ids), "changed", changed)
	}
	return changed, nil
}
