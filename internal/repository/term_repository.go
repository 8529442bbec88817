package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/roomgrid-backend/internal/model"
)

const termColumns = `code, label, source_kind, source_url, COALESCE(fallback_kind, ''), COALESCE(fallback_url, ''),
	is_active, is_legacy, sort_order, created_at, updated_at`

type TermRepository struct {
	pool *pgxpool.Pool
}

func NewTermRepository(pool *pgxpool.Pool) *TermRepository {
	return &TermRepository{pool: pool}
}

func scanTerm(row pgx.Row, t *model.Term) error {
	return row.Scan(&t.Code, &t.Label, &t.SourceKind, &t.SourceURL, &t.FallbackKind, &t.FallbackURL,
		&t.IsActive, &t.IsLegacy, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
}

// List returns every term, newest first.
func (r *TermRepository) List(ctx context.Context) ([]model.Term, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+termColumns+` FROM terms ORDER BY sort_order DESC, code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []model.Term
	for rows.Next() {
		var t model.Term
		if err := scanTerm(rows, &t); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func (r *TermRepository) GetByCode(ctx context.Context, code string) (*model.Term, error) {
	t := &model.Term{}
	err := scanTerm(r.pool.QueryRow(ctx,
		`SELECT `+termColumns+` FROM terms WHERE UPPER(code) = UPPER($1)`, code), t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TermRepository) Upsert(ctx context.Context, t *model.Term) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO terms (code, label, source_kind, source_url, fallback_kind, fallback_url, is_active, is_legacy, sort_order)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
		 ON CONFLICT (code) DO UPDATE SET
		   label = EXCLUDED.label,
		   source_kind = EXCLUDED.source_kind,
		   source_url = EXCLUDED.source_url,
		   fallback_kind = EXCLUDED.fallback_kind,
		   fallback_url = EXCLUDED.fallback_url,
		   is_active = EXCLUDED.is_active,
		   is_legacy = EXCLUDED.is_legacy,
		   sort_order = EXCLUDED.sort_order,
		   updated_at = NOW()
		 RETURNING created_at, updated_at`,
		t.Code, t.Label, t.SourceKind, t.SourceURL, t.FallbackKind, t.FallbackURL, t.IsActive, t.IsLegacy, t.SortOrder,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}
