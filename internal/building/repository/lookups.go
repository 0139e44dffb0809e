package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements Repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a lookup repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Insert records a lookup. A zero ID is replaced by a new one.
func (r *Repo) Insert(ctx context.Context, l Lookup) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	query := `
		INSERT INTO building_lookups (id, bbl, address, score, grade, label, red_flags, looked_up_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.pool.Exec(ctx, query,
		l.ID, l.BBL, l.Address, l.Score, l.Grade, l.Label, l.RedFlags, l.LookedUpAt,
	); err != nil {
		return fmt.Errorf("insert building lookup: %w", err)
	}
	return nil
}

// ListByBBL returns the newest lookups of a building first.
func (r *Repo) ListByBBL(ctx context.Context, bbl string, limit int) ([]Lookup, error) {
	query := `
		SELECT id, bbl, address, score, grade, label, red_flags, looked_up_at
		FROM building_lookups
		WHERE bbl = $1
		ORDER BY looked_up_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, bbl, limit)
	if err != nil {
		return nil, fmt.Errorf("list building lookups: %w", err)
	}
	lookups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Lookup, error) {
		var l Lookup
		err := row.Scan(&l.ID, &l.BBL, &l.Address, &l.Score, &l.Grade, &l.Label, &l.RedFlags, &l.LookedUpAt)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan building lookups: %w", err)
	}
	return lookups, nil
}

// DeleteBefore removes lookups recorded before the cutoff.
func (r *Repo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM building_lookups WHERE looked_up_at < $1`
	result, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("delete building lookups: %w", err)
	}
	return result.RowsAffected(), nil
}
