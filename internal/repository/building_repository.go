package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/roomgrid-backend/internal/model"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

type BuildingRepository struct {
	pool *pgxpool.Pool
}

func NewBuildingRepository(pool *pgxpool.Pool) *BuildingRepository {
	return &BuildingRepository{pool: pool}
}

// List returns every building in seed-file order. Room resolution breaks
// prefix ties by this order.
func (r *BuildingRepository) List(ctx context.Context) ([]model.Building, error) {
	rows, err := r.pool.Query(ctx, `SELECT code, description FROM buildings ORDER BY position ASC, code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []model.Building
	for rows.Next() {
		var b model.Building
		if err := rows.Scan(&b.Code, &b.Description); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

func (r *BuildingRepository) GetByCode(ctx context.Context, code string) (*model.Building, error) {
	b := &model.Building{}
	err := r.pool.QueryRow(ctx,
		`SELECT code, description FROM buildings WHERE UPPER(code) = UPPER($1)`, code).
		Scan(&b.Code, &b.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpsertMany inserts or updates buildings in a single transaction. The slice
// index is stored as the building's list position.
func (r *BuildingRepository) UpsertMany(ctx context.Context, buildings []model.Building) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i, b := range buildings {
		batch.Queue(
			`INSERT INTO buildings (code, description, position, updated_at) VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (code) DO UPDATE SET
			   description = EXCLUDED.description,
			   position = EXCLUDED.position,
			   updated_at = NOW()`,
			b.Code, b.Description, i)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(buildings), nil
}
