package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/logger"
)

type postgresRepo struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, log *zap.Logger) Repository {
	return &postgresRepo{pool: pool, log: logger.OrNop(log)}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	const q = `
SELECT id::text, name, created_at
FROM stores
WHERE id = $1
`
	var s domain.Store
	if err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.log.Error("store repo: get", zap.String("store_id", id), zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) ListLocations(ctx context.Context, storeID string) ([]domain.Location, error) {
	const q = `
SELECT id::text, store_id::text, name, address, city, country_code, created_at
FROM locations
WHERE store_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		r.log.Error("store repo: list locations", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Location{}
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.StoreID, &l.Name, &l.Address, &l.City, &l.CountryCode, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *postgresRepo) CreateLocation(ctx context.Context, in CreateLocationInput) (*domain.Location, error) {
	const q = `
INSERT INTO locations (store_id, name, address, city, country_code)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, store_id::text, name, address, city, country_code, created_at
`
	var l domain.Location
	err := r.pool.QueryRow(ctx, q, in.StoreID, in.Name, in.Address, in.City, in.CountryCode).
		Scan(&l.ID, &l.StoreID, &l.Name, &l.Address, &l.City, &l.CountryCode, &l.CreatedAt)
	if err != nil {
		r.log.Error("store repo: create location", zap.String("store_id", in.StoreID), zap.Error(err))
		return nil, err
	}
	return &l, nil
}

func (r *postgresRepo) DeleteLocation(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
