package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"

	"github.com/TelmenBay/leetlog/internal/readiness"
)

var problemColumns = []string{
	"id", "external_id", "title", "slug", "difficulty", "tags",
	"description", "paid_only", "created_at", "updated_at",
}

func (r *repo) GetProblemByExternalID(ctx context.Context, externalID int) (*Problem, error) {
	sel := r.b.Select(problemColumns...).
		From(r.b.Table(problemsTable)).
		Where(entsql.EQ("external_id", externalID)).
		Limit(1)
	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query problem: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query problem: %w", err)
		}
		return nil, ErrNotFound
	}
	p, err := scanProblem(rows)
	if err != nil {
		return nil, err
	}
	return p, rows.Err()
}

func (r *repo) CreateProblem(ctx context.Context, p *Problem) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = nowUTC()
	}
	p.UpdatedAt = p.CreatedAt
	tags, err := marshalTags(p.Tags)
	if err != nil {
		return err
	}

	ins := r.b.Insert(problemsTable).
		Columns(problemColumns...).
		Values(p.ID, p.ExternalID, p.Title, p.Slug, string(p.Difficulty), tags,
			p.Description, p.PaidOnly, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if _, err := r.exec(ctx, ins); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert problem: %w", err)
	}
	return nil
}

func (r *repo) BackfillProblem(ctx context.Context, id string, tags []string, description string, at time.Time) error {
	encoded, err := marshalTags(tags)
	if err != nil {
		return err
	}
	upd := r.b.Update(problemsTable).
		Set("tags", encoded).
		Set("description", description).
		Set("updated_at", at.UTC()).
		Where(entsql.EQ("id", id))
	res, err := r.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("backfill problem: %w", err)
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProblem(rs rowScanner) (*Problem, error) {
	var (
		p          Problem
		difficulty string
		tags       string
	)
	if err := rs.Scan(&p.ID, &p.ExternalID, &p.Title, &p.Slug, &difficulty, &tags,
		&p.Description, &p.PaidOnly, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan problem: %w", err)
	}
	p.Difficulty = readiness.Difficulty(difficulty)
	if err := decodeTags(tags, &p.Tags); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw string, dst *[]string) error {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
