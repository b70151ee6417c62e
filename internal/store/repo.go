package store

import (
	"context"
	"database/sql"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/TelmenBay/leetlog/internal/readiness"
)

// Problem is shared problem metadata, cached once per external id.
type Problem struct {
	ID          string
	ExternalID  int
	Title       string
	Slug        string
	Difficulty  readiness.Difficulty
	Tags        []string
	Description string
	PaidOnly    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserProblem links a user to a problem and carries the persisted snapshot.
type UserProblem struct {
	ID        string
	UserID    string
	ProblemID string
	Status    readiness.ProblemStatus
	TimeSpent *int
	SolvedAt  *time.Time
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	// Problem is populated by reads that join problems.
	Problem *Problem
	// Logs is populated by ListUserProblems, newest first.
	Logs []Log
}

// Snapshot returns the persisted aggregate.
func (up *UserProblem) Snapshot() readiness.Snapshot {
	return readiness.Snapshot{TimeSpent: up.TimeSpent, Status: up.Status, SolvedAt: up.SolvedAt}
}

// Log is one stored attempt.
type Log struct {
	ID            string
	UserProblemID string
	TimeSpent     int
	Status        readiness.LogStatus
	Notes         string
	Solution      string
	CreatedAt     time.Time
	ExpiresAt     *time.Time
}

// Entry converts l for the readiness functions.
func (l Log) Entry() readiness.Log {
	return readiness.Log{
		ID:        l.ID,
		TimeSpent: l.TimeSpent,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		ExpiresAt: l.ExpiresAt,
	}
}

// Entries converts a slice of logs.
func Entries(logs []Log) []readiness.Log {
	out := make([]readiness.Log, len(logs))
	for i, l := range logs {
		out[i] = l.Entry()
	}
	return out
}

// Preferences is user-scoped UI configuration.
type Preferences struct {
	UserID            string
	SkipDeleteConfirm bool
	UpdatedAt         time.Time
}

// ProblemRepo manages shared problem metadata.
type ProblemRepo interface {
	// GetProblemByExternalID returns ErrNotFound when the problem is not cached.
	GetProblemByExternalID(ctx context.Context, externalID int) (*Problem, error)

	// CreateProblem inserts p, assigning an ID when empty. Returns ErrDuplicate
	// when the external id already exists.
	CreateProblem(ctx context.Context, p *Problem) error

	// BackfillProblem fills tags and description; nothing else is mutable.
	BackfillProblem(ctx context.Context, id string, tags []string, description string, at time.Time) error
}

// UserProblemRepo manages user-problem rows and their snapshots.
type UserProblemRepo interface {
	// CreateUserProblem returns ErrDuplicate when the (user, problem) pair exists.
	CreateUserProblem(ctx context.Context, up *UserProblem) error

	// GetUserProblem returns the row with its Problem populated.
	GetUserProblem(ctx context.Context, id string) (*UserProblem, error)

	// ListUserProblems returns a user's problems, newest first, each with
	// Problem and up to logLimit recent logs (0 = all).
	ListUserProblems(ctx context.Context, userID string, logLimit int) ([]*UserProblem, error)

	// ListSolvedUserProblemIDs returns every row holding a best time.
	ListSolvedUserProblemIDs(ctx context.Context) ([]string, error)

	// UpdateSnapshot writes snap when the stored version equals
	// expectedVersion and bumps the version. Returns ErrConflict otherwise.
	UpdateSnapshot(ctx context.Context, id string, snap readiness.Snapshot, expectedVersion int, at time.Time) error

	// DeleteUserProblem removes the row; its logs cascade.
	DeleteUserProblem(ctx context.Context, id string) error
}

// LogRepo manages attempt logs.
type LogRepo interface {
	CreateLog(ctx context.Context, l *Log) error
	GetLog(ctx context.Context, id string) (*Log, error)
	DeleteLog(ctx context.Context, id string) error

	// ListLogs returns logs newest first, at most limit (0 = all).
	ListLogs(ctx context.Context, userProblemID string, limit int) ([]Log, error)
}

// PreferenceRepo manages user preferences.
type PreferenceRepo interface {
	// GetPreferences returns defaults when none are stored.
	GetPreferences(ctx context.Context, userID string) (*Preferences, error)
	SavePreferences(ctx context.Context, p *Preferences) error
}

// Repo is the full storage surface, available on *Store and inside InTx.
type Repo interface {
	ProblemRepo
	UserProblemRepo
	LogRepo
	PreferenceRepo
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// repo implements Repo with ent's SQL builders over a querier.
type repo struct {
	q querier
	b *entsql.DialectBuilder
}

var _ Repo = (*repo)(nil)

func newRepo(q querier, dialectName string) *repo {
	return &repo{q: q, b: entsql.Dialect(dialectName)}
}

type queryBuilder interface {
	Query() (string, []any)
}

func (r *repo) exec(ctx context.Context, qb queryBuilder) (sql.Result, error) {
	query, args := qb.Query()
	return r.q.ExecContext(ctx, query, args...)
}

func (r *repo) query(ctx context.Context, qb queryBuilder) (*sql.Rows, error) {
	query, args := qb.Query()
	return r.q.QueryContext(ctx, query, args...)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func nullTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.UTC()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time.UTC()
	return &v
}
