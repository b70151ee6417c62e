package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"

	"github.com/TelmenBay/leetlog/internal/readiness"
)

var userProblemColumns = []string{
	"id", "user_id", "problem_id", "status", "time_spent", "solved_at",
	"version", "created_at", "updated_at",
}

func (r *repo) CreateUserProblem(ctx context.Context, up *UserProblem) error {
	if up.ID == "" {
		up.ID = newID()
	}
	if up.CreatedAt.IsZero() {
		up.CreatedAt = nowUTC()
	}
	up.UpdatedAt = up.CreatedAt
	if up.Status == "" {
		up.Status = readiness.NotStarted
	}

	ins := r.b.Insert(userProblemsTable).
		Columns(userProblemColumns...).
		Values(up.ID, up.UserID, up.ProblemID, string(up.Status), nullInt(up.TimeSpent),
			nullTime(up.SolvedAt), up.Version, up.CreatedAt.UTC(), up.UpdatedAt.UTC())
	if _, err := r.exec(ctx, ins); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user problem: %w", err)
	}
	return nil
}

// selectWithProblem joins user_problems to problems. Column order matches
// scanUserProblemWithProblem.
func (r *repo) selectWithProblem() (*entsql.Selector, *entsql.SelectTable) {
	up := r.b.Table(userProblemsTable).As("up")
	p := r.b.Table(problemsTable).As("p")

	cols := make([]string, 0, len(userProblemColumns)+len(problemColumns))
	for _, c := range userProblemColumns {
		cols = append(cols, up.C(c))
	}
	for _, c := range problemColumns {
		cols = append(cols, p.C(c))
	}
	sel := r.b.Select(cols...).
		From(up).
		Join(p).
		On(up.C("problem_id"), p.C("id"))
	return sel, up
}

func (r *repo) GetUserProblem(ctx context.Context, id string) (*UserProblem, error) {
	sel, up := r.selectWithProblem()
	sel.Where(entsql.EQ(up.C("id"), id))

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query user problem: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query user problem: %w", err)
		}
		return nil, ErrNotFound
	}
	row, err := scanUserProblemWithProblem(rows)
	if err != nil {
		return nil, err
	}
	return row, rows.Err()
}

func (r *repo) ListUserProblems(ctx context.Context, userID string, logLimit int) ([]*UserProblem, error) {
	sel, up := r.selectWithProblem()
	sel.Where(entsql.EQ(up.C("user_id"), userID)).
		OrderBy(entsql.Desc(up.C("created_at")), entsql.Desc(up.C("id")))

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query user problems: %w", err)
	}
	var out []*UserProblem
	for rows.Next() {
		row, err := scanUserProblemWithProblem(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("query user problems: %w", err)
	}
	// Release the cursor before the log query; SQLite runs on a single
	// connection.
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}
	ids := make([]string, len(out))
	for i, item := range out {
		ids[i] = item.ID
	}
	logs, err := r.listLogsFor(ctx, ids, logLimit)
	if err != nil {
		return nil, err
	}
	for _, item := range out {
		item.Logs = logs[item.ID]
	}
	return out, nil
}

func (r *repo) ListSolvedUserProblemIDs(ctx context.Context) ([]string, error) {
	sel := r.b.Select("id").
		From(r.b.Table(userProblemsTable)).
		Where(entsql.NotNull("time_spent")).
		OrderBy("id")
	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query solved user problems: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repo) UpdateSnapshot(ctx context.Context, id string, snap readiness.Snapshot, expectedVersion int, at time.Time) error {
	upd := r.b.Update(userProblemsTable).
		Set("status", string(snap.Status)).
		Set("updated_at", at.UTC()).
		Add("version", 1)
	if snap.TimeSpent != nil {
		upd.Set("time_spent", *snap.TimeSpent)
	} else {
		upd.SetNull("time_spent")
	}
	if snap.SolvedAt != nil {
		upd.Set("solved_at", snap.SolvedAt.UTC())
	} else {
		upd.SetNull("solved_at")
	}
	upd.Where(entsql.And(
		entsql.EQ("id", id),
		entsql.EQ("version", expectedVersion),
	))

	res, err := r.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("update snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing matched: either the row is gone or another writer won.
	if _, err := r.userProblemVersion(ctx, id); err != nil {
		return err
	}
	return ErrConflict
}

func (r *repo) userProblemVersion(ctx context.Context, id string) (int, error) {
	sel := r.b.Select("version").
		From(r.b.Table(userProblemsTable)).
		Where(entsql.EQ("id", id))
	query, args := sel.Query()
	var v int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("query version: %w", err)
	}
	return v, nil
}

func (r *repo) DeleteUserProblem(ctx context.Context, id string) error {
	del := r.b.Delete(userProblemsTable).Where(entsql.EQ("id", id))
	res, err := r.exec(ctx, del)
	if err != nil {
		return fmt.Errorf("delete user problem: %w", err)
	}
	return requireAffected(res)
}

func scanUserProblemWithProblem(rs rowScanner) (*UserProblem, error) {
	var (
		up         UserProblem
		p          Problem
		status     string
		timeSpent  sql.NullInt64
		solvedAt   sql.NullTime
		difficulty string
		tags       string
	)
	err := rs.Scan(
		&up.ID, &up.UserID, &up.ProblemID, &status, &timeSpent, &solvedAt,
		&up.Version, &up.CreatedAt, &up.UpdatedAt,
		&p.ID, &p.ExternalID, &p.Title, &p.Slug, &difficulty, &tags,
		&p.Description, &p.PaidOnly, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan user problem: %w", err)
	}
	up.Status = readiness.ProblemStatus(status)
	up.TimeSpent = intPtr(timeSpent)
	up.SolvedAt = timePtr(solvedAt)
	up.CreatedAt = up.CreatedAt.UTC()
	up.UpdatedAt = up.UpdatedAt.UTC()

	p.Difficulty = readiness.Difficulty(difficulty)
	if err := decodeTags(tags, &p.Tags); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	up.Problem = &p
	return &up, nil
}
