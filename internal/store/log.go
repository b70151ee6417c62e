package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/TelmenBay/leetlog/internal/readiness"
)

var logColumns = []string{
	"id", "user_problem_id", "time_spent", "status", "notes", "solution",
	"created_at", "expires_at",
}

func (r *repo) CreateLog(ctx context.Context, l *Log) error {
	if l.ID == "" {
		l.ID = newID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = nowUTC()
	}

	ins := r.b.Insert(logsTable).
		Columns(logColumns...).
		Values(l.ID, l.UserProblemID, l.TimeSpent, string(l.Status), nullString(l.Notes),
			nullString(l.Solution), l.CreatedAt.UTC(), nullTime(l.ExpiresAt))
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

func (r *repo) GetLog(ctx context.Context, id string) (*Log, error) {
	sel := r.b.Select(logColumns...).
		From(r.b.Table(logsTable)).
		Where(entsql.EQ("id", id))
	logs, err := r.scanLogs(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNotFound
	}
	return &logs[0], nil
}

func (r *repo) DeleteLog(ctx context.Context, id string) error {
	del := r.b.Delete(logsTable).Where(entsql.EQ("id", id))
	res, err := r.exec(ctx, del)
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return requireAffected(res)
}

func (r *repo) ListLogs(ctx context.Context, userProblemID string, limit int) ([]Log, error) {
	sel := r.b.Select(logColumns...).
		From(r.b.Table(logsTable)).
		Where(entsql.EQ("user_problem_id", userProblemID)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.scanLogs(ctx, sel)
}

// listLogsFor loads the logs of several user problems in one query, newest
// first, keeping at most limit per user problem. limit 0 keeps all.
func (r *repo) listLogsFor(ctx context.Context, userProblemIDs []string, limit int) (map[string][]Log, error) {
	args := make([]any, len(userProblemIDs))
	for i, id := range userProblemIDs {
		args[i] = id
	}
	sel := r.b.Select(logColumns...).
		From(r.b.Table(logsTable)).
		Where(entsql.In("user_problem_id", args...)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	logs, err := r.scanLogs(ctx, sel)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Log, len(userProblemIDs))
	for _, l := range logs {
		if limit > 0 && len(out[l.UserProblemID]) >= limit {
			continue
		}
		out[l.UserProblemID] = append(out[l.UserProblemID], l)
	}
	return out, nil
}

func (r *repo) scanLogs(ctx context.Context, sel *entsql.Selector) ([]Log, error) {
	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var out []Log
	for rows.Next() {
		var (
			l         Log
			status    string
			notes     sql.NullString
			solution  sql.NullString
			expiresAt sql.NullTime
		)
		if err := rows.Scan(&l.ID, &l.UserProblemID, &l.TimeSpent, &status, &notes,
			&solution, &l.CreatedAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		l.Status = readiness.LogStatus(status)
		l.Notes = notes.String
		l.Solution = solution.String
		l.CreatedAt = l.CreatedAt.UTC()
		l.ExpiresAt = timePtr(expiresAt)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	return out, nil
}
