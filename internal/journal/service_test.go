package journal

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TelmenBay/leetlog/internal/leetcode"
	"github.com/TelmenBay/leetlog/internal/logger"
	"github.com/TelmenBay/leetlog/internal/readiness"
	"github.com/TelmenBay/leetlog/internal/store"
)

const (
	alice = "user-alice"
	bob   = "user-bob"

	twoSumURL = "https://leetcode.com/problems/two-sum/description/"
	lruURL    = "https://leetcode.com/problems/lru-cache/"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testMetadata() []*leetcode.Metadata {
	return []*leetcode.Metadata{
		{ExternalID: 1, Title: "Two Sum", Slug: "two-sum", Difficulty: "easy", Tags: []string{"Array", "Hash Table"}},
		{ExternalID: 146, Title: "LRU Cache", Slug: "lru-cache", Difficulty: "medium", Tags: []string{"Hash Table", "Linked List", "Design"}},
	}
}

type fixture struct {
	svc     *Service
	store   *store.Store
	fetcher *leetcode.MockFetcher
	clock   *testClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	f := &fixture{
		store:   st,
		fetcher: leetcode.NewMockFetcher(testMetadata()...),
		clock:   &testClock{t: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)},
	}
	f.svc = NewService(st, f.fetcher, logger.Nop(), WithClock(f.clock.Now))
	return f
}

func (f *fixture) add(t *testing.T, userID, url string) *UserProblemView {
	t.Helper()
	up, err := f.svc.AddProblem(context.Background(), userID, url)
	require.NoError(t, err)
	return up
}

func (f *fixture) submit(t *testing.T, userID, upID string, secs any, status string) *SubmitResult {
	t.Helper()
	res, err := f.svc.SubmitLog(context.Background(), userID, upID, AttemptInput{TimeSpent: secs, Status: status})
	require.NoError(t, err)
	return res
}

func TestAddProblem(t *testing.T) {
	f := newFixture(t)

	up := f.add(t, alice, twoSumURL)
	assert.Equal(t, readiness.NotStarted, up.Status)
	assert.Nil(t, up.TimeSpent)
	assert.Equal(t, readiness.None, up.Readiness)
	assert.Equal(t, "-", up.BestTime)
	assert.Equal(t, 1, up.Problem.ExternalID)
	assert.Equal(t, readiness.Easy, up.Problem.Difficulty)
	assert.Equal(t, []string{"Array", "Hash Table"}, up.Problem.Tags)
	assert.Equal(t, []string{"two-sum"}, f.fetcher.Calls)
}

func TestAddProblem_InvalidURL(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddProblem(context.Background(), alice, "https://example.com/problems/two-sum")
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Zero(t, f.fetcher.CallCount())
}

func TestAddProblem_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.add(t, alice, twoSumURL)

	_, err := f.svc.AddProblem(context.Background(), alice, "https://leetcode.com/problems/two-sum")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "problem already added to your list", err.Error())
}

func TestAddProblem_SharedAcrossUsers(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, alice, twoSumURL)
	b := f.add(t, bob, twoSumURL)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Problem.ID, b.Problem.ID)
}

func TestAddProblem_FetchError(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddProblem(context.Background(), alice, "https://leetcode.com/problems/missing/")
	assert.ErrorIs(t, err, leetcode.ErrNotFound)

	f.fetcher.FailWith("lru-cache", &leetcode.ErrUnavailable{StatusCode: 503, Err: errors.New("down")})
	_, err = f.svc.AddProblem(context.Background(), alice, lruURL)
	var unavailable *leetcode.ErrUnavailable
	assert.ErrorAs(t, err, &unavailable)

	views, err := f.svc.Dashboard(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestAddProblem_BackfillsTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bare := &store.Problem{ExternalID: 1, Title: "Two Sum", Slug: "two-sum", Difficulty: readiness.Easy}
	require.NoError(t, f.store.CreateProblem(ctx, bare))

	up := f.add(t, alice, twoSumURL)
	assert.Equal(t, bare.ID, up.Problem.ID)
	assert.Equal(t, []string{"Array", "Hash Table"}, up.Problem.Tags)

	p, err := f.store.GetProblemByExternalID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Array", "Hash Table"}, p.Tags)
}

func TestSubmitLog_Solved(t *testing.T) {
	f := newFixture(t)
	up := f.add(t, alice, twoSumURL)

	res := f.submit(t, alice, up.ID, 300, "solved")
	assert.Equal(t, 300, res.Log.TimeSpent)
	assert.True(t, res.Log.Active)
	assert.Equal(t, f.clock.Now().AddDate(0, 1, 0), res.Log.ExpiresAt)

	got := res.UserProblem
	assert.Equal(t, readiness.Solved, got.Status)
	require.NotNil(t, got.TimeSpent)
	assert.Equal(t, 300, *got.TimeSpent)
	assert.Equal(t, "5m", got.BestTime)
	require.NotNil(t, got.SolvedAt)
	assert.Equal(t, f.clock.Now(), *got.SolvedAt)
	assert.Equal(t, readiness.Mastered, got.Readiness)
	assert.Len(t, got.Logs, 1)
}

func TestSubmitLog_AttemptedOnly(t *testing.T) {
	f := newFixture(t)
	up := f.add(t, alice, twoSumURL)

	got := f.submit(t, alice, up.ID, 900, "attempted").UserProblem
	assert.Equal(t, readiness.InProgress, got.Status)
	assert.Nil(t, got.TimeSpent)
	assert.Nil(t, got.SolvedAt)
	assert.Equal(t, readiness.None, got.Readiness)
}

func TestSubmitLog_CoercesInput(t *testing.T) {
	f := newFixture(t)
	up := f.add(t, alice, twoSumURL)

	res := f.submit(t, alice, up.ID, "abc", "bogus")
	assert.Equal(t, 0, res.Log.TimeSpent)
	assert.Equal(t, readiness.LogAttempted, res.Log.Status)

	res = f.submit(t, alice, up.ID, 125.9, "")
	assert.Equal(t, 125, res.Log.TimeSpent)
	assert.Equal(t, readiness.LogSolved, res.Log.Status)
}

func TestSubmitLog_BestTimeAndLatestAttempt(t *testing.T) {
	f := newFixture(t)
	up := f.add(t, alice, twoSumURL)

	f.submit(t, alice, up.ID, 1500, "solved")
	f.clock.Advance(time.Hour)
	f.submit(t, alice, up.ID, 300, "solved")
	f.clock.Advance(time.Hour)
	got := f.submit(t, alice, up.ID, 900, "solved").UserProblem

	require.NotNil(t, got.TimeSpent)
	assert.Equal(t, 300, *got.TimeSpent)
	assert.Equal(t, readiness.Mastered, got.Readiness)

	f.clock.Advance(time.Hour)
	got = f.submit(t, alice, up.ID, 2000, "attempted").UserProblem
	assert.Equal(t, 300, *got.TimeSpent)
	assert.Equal(t, readiness.Weak, got.Readiness, "newest active log attempted")
	assert.Equal(t, readiness.Solved, got.Status)
}

func TestSubmitLog_OwnershipAndMissing(t *testing.T) {
	f := newFixture(t)
	up := f.add(t, alice, twoSumURL)
	ctx := context.Background()

	_, err := f.svc.SubmitLog(ctx, bob, up.ID, AttemptInput{TimeSpent: 60, Status: "solved"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.SubmitLog(ctx, alice, "missing", AttemptInput{TimeSpent: 60, Status: "solved"})
	assert.ErrorIs(t, err, ErrNotFound)

	logs, err := f.svc.Logs(ctx, alice, up.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestDeleteLog_Recomputes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := f.add(t, alice, twoSumURL)

	f.submit(t, alice, up.ID, 1500, "solved")
	f.clock.Advance(time.Minute)
	best := f.submit(t, alice, up.ID, 300, "solved").Log

	_, err := f.svc.DeleteLog(ctx, bob, best.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := f.svc.DeleteLog(ctx, alice, best.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TimeSpent)
	assert.Equal(t, 1500, *got.TimeSpent)
	assert.Equal(t, readiness.Weak, got.Readiness)

	_, err = f.svc.DeleteLog(ctx, alice, best.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLog_LastLogKeepsSolvedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := f.add(t, alice, twoSumURL)
	l := f.submit(t, alice, up.ID, 300, "solved").Log

	got, err := f.svc.DeleteLog(ctx, alice, l.ID)
	require.NoError(t, err)
	assert.Equal(t, readiness.NotStarted, got.Status)
	assert.Nil(t, got.TimeSpent)
	assert.NotNil(t, got.SolvedAt)
	assert.Equal(t, readiness.None, got.Readiness)
}

func TestDeleteUserProblem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := f.add(t, alice, twoSumURL)
	f.submit(t, alice, up.ID, 300, "solved")

	assert.ErrorIs(t, f.svc.DeleteUserProblem(ctx, bob, up.ID), ErrForbidden)
	require.NoError(t, f.svc.DeleteUserProblem(ctx, alice, up.ID))
	assert.ErrorIs(t, f.svc.DeleteUserProblem(ctx, alice, up.ID), ErrNotFound)

	_, err := f.svc.GetUserProblem(ctx, alice, up.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The shared problem row survives.
	_, err = f.store.GetProblemByExternalID(ctx, 1)
	assert.NoError(t, err)
}

func TestDeleteUserProblems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, alice, twoSumURL)
	b := f.add(t, alice, lruURL)

	n, err := f.svc.DeleteUserProblems(ctx, alice, []string{a.ID, "gone", b.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	views, err := f.svc.Dashboard(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeleteUserProblems_Forbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	theirs := f.add(t, bob, twoSumURL)

	_, err := f.svc.DeleteUserProblems(ctx, alice, []string{theirs.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.GetUserProblem(ctx, bob, theirs.ID)
	assert.NoError(t, err)
}

func TestDashboard_ExpiredWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := f.add(t, alice, twoSumURL)
	f.clock.Advance(time.Minute)
	f.add(t, alice, lruURL)

	f.submit(t, alice, up.ID, 300, "solved")

	views, err := f.svc.Dashboard(ctx, alice)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "LRU Cache", views[0].Problem.Title, "newest first")
	assert.Equal(t, readiness.Mastered, views[1].Readiness)

	// Past the one-month window the log has expired but the snapshot still
	// holds the best time until the next write or sweep.
	f.clock.Advance(32 * 24 * time.Hour)
	views, err = f.svc.Dashboard(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, readiness.Weak, views[1].Readiness)
	assert.Empty(t, views[1].Logs)
}

func TestSubmitLog_ExpiredBestDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := f.add(t, alice, twoSumURL)

	f.submit(t, alice, up.ID, 300, "solved")
	f.clock.Advance(20 * 24 * time.Hour)
	f.submit(t, alice, up.ID, 400, "solved")
	f.clock.Advance(15 * 24 * time.Hour)

	// First log expired, second is 15 days old, solvedAt tracks the newest
	// solved log.
	got := f.submit(t, alice, up.ID, 500, "solved").UserProblem
	require.NotNil(t, got.TimeSpent)
	assert.Equal(t, 400, *got.TimeSpent)
	assert.Equal(t, readiness.Mastered, got.Readiness)

	logs, err := f.svc.Logs(ctx, alice, up.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, 500, logs[0].TimeSpent)
	assert.False(t, logs[2].Active)
}

func TestLogs_Forbidden(t *testing.T) {
	f := newFixture(t)
	up := f.add(t, alice, twoSumURL)

	_, err := f.svc.Logs(context.Background(), bob, up.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, alice, twoSumURL)
	b := f.add(t, alice, lruURL)
	f.submit(t, alice, a.ID, 300, "solved")

	n, err := f.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "nothing expired yet")

	f.clock.Advance(32 * 24 * time.Hour)
	f.submit(t, alice, b.ID, 600, "solved")

	n, err = f.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.GetUserProblem(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TimeSpent)
	assert.Equal(t, readiness.Solved, got.Status)
	assert.NotNil(t, got.SolvedAt)
	assert.Equal(t, readiness.None, got.Readiness)

	n, err = f.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, alice, twoSumURL)
	f.add(t, alice, lruURL)
	f.submit(t, alice, a.ID, 300, "solved")

	sum, err := f.svc.Analytics(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalProblems)
	assert.Equal(t, 1, sum.Solved)
	assert.Greater(t, sum.GPA, 0.0)

	empty, err := f.svc.Analytics(ctx, bob)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalProblems)
	assert.Zero(t, empty.GPA)
}

func TestPreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Preferences(ctx, alice)
	require.NoError(t, err)
	assert.False(t, p.SkipDeleteConfirm)

	_, err = f.svc.SavePreferences(ctx, alice, true)
	require.NoError(t, err)

	p, err = f.svc.Preferences(ctx, alice)
	require.NoError(t, err)
	assert.True(t, p.SkipDeleteConfirm)
}

func TestSubmitLog_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := f.add(t, alice, twoSumURL)

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SubmitLog(ctx, alice, up.ID, AttemptInput{TimeSpent: 100 + i, Status: "solved"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	logs, err := f.svc.Logs(ctx, alice, up.ID)
	require.NoError(t, err)
	assert.Len(t, logs, n)

	got, err := f.store.GetUserProblem(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.Version)
	require.NotNil(t, got.TimeSpent)
	assert.Equal(t, 100, *got.TimeSpent)
	assert.Zero(t, f.svc.locks.size())
}

// conflictStore fails the first n snapshot writes with ErrConflict, as a
// writer in another process would.
type conflictStore struct {
	Store
	remaining atomic.Int32
}

func (c *conflictStore) InTx(ctx context.Context, fn func(store.Repo) error) error {
	return c.Store.InTx(ctx, func(r store.Repo) error {
		return fn(&conflictRepo{Repo: r, parent: c})
	})
}

type conflictRepo struct {
	store.Repo
	parent *conflictStore
}

func (r *conflictRepo) UpdateSnapshot(ctx context.Context, id string, snap readiness.Snapshot, version int, at time.Time) error {
	if r.parent.remaining.Add(-1) >= 0 {
		return store.ErrConflict
	}
	return r.Repo.UpdateSnapshot(ctx, id, snap, version, at)
}

func TestSubmitLog_RetriesOnConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := f.add(t, alice, twoSumURL)

	cs := &conflictStore{Store: f.store}
	cs.remaining.Store(maxSnapshotAttempts - 1)
	svc := NewService(cs, f.fetcher, logger.Nop(), WithClock(f.clock.Now))

	_, err := svc.SubmitLog(ctx, alice, up.ID, AttemptInput{TimeSpent: 300, Status: "solved"})
	require.NoError(t, err)

	logs, err := svc.Logs(ctx, alice, up.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1, "failed attempts roll back their insert")
}

func TestSubmitLog_ConflictExhausted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := f.add(t, alice, twoSumURL)

	cs := &conflictStore{Store: f.store}
	cs.remaining.Store(maxSnapshotAttempts)
	svc := NewService(cs, f.fetcher, logger.Nop(), WithClock(f.clock.Now))

	_, err := svc.SubmitLog(ctx, alice, up.ID, AttemptInput{TimeSpent: 300, Status: "solved"})
	assert.ErrorIs(t, err, store.ErrConflict)

	logs, err := svc.Logs(ctx, alice, up.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
