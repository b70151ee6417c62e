package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) GetPreferences(ctx context.Context, userID string) (*Preferences, error) {
	sel := r.b.Select("user_id", "skip_delete_confirm", "updated_at").
		From(r.b.Table(preferencesTable)).
		Where(entsql.EQ("user_id", userID))
	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	p := &Preferences{UserID: userID}
	if rows.Next() {
		if err := rows.Scan(&p.UserID, &p.SkipDeleteConfirm, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan preferences: %w", err)
		}
		p.UpdatedAt = p.UpdatedAt.UTC()
	}
	return p, rows.Err()
}

func (r *repo) SavePreferences(ctx context.Context, p *Preferences) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = nowUTC()
	}
	ins := r.b.Insert(preferencesTable).
		Columns("user_id", "skip_delete_confirm", "updated_at").
		Values(p.UserID, p.SkipDeleteConfirm, p.UpdatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
