package shippingprofile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ziplofy-shipping/internal/db"
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

const profileColumns = `id::text, store_id::text, profile_name, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.ShippingProfile, error) {
	var p domain.ShippingProfile
	if err := row.Scan(&p.ID, &p.StoreID, &p.ProfileName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, storeID, profileName string) (*domain.ShippingProfile, error) {
	var profile *domain.ShippingProfile
	err := db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		p, err := scanProfile(tx.QueryRow(ctx, `
INSERT INTO shipping_profiles (store_id, profile_name)
VALUES ($1, $2)
RETURNING `+profileColumns, storeID, profileName))
		if err != nil {
			return err
		}

		cmd, err := tx.Exec(ctx, `
INSERT INTO shipping_profile_location_settings (shipping_profile_id, location_id, store_id, rate_mode)
SELECT $1::uuid, l.id, l.store_id, $3::text
FROM locations l
WHERE l.store_id = $2
ORDER BY l.created_at ASC
`, p.ID, storeID, string(domain.DefaultRateMode))
		if err != nil {
			return fmt.Errorf("seed location settings: %w", err)
		}
		r.log.Debug("seeded location settings",
			zap.String("profile_id", p.ID),
			zap.Int64("rows", cmd.RowsAffected()))

		profile = p
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.log.Error("shipping profile repo: create", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	return profile, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ShippingProfile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM shipping_profiles WHERE id = $1`, id))
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.ShippingProfile, error) {
	const q = `
SELECT ` + profileColumns + `
FROM shipping_profiles
WHERE store_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		r.log.Error("shipping profile repo: list", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.ShippingProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) NameExists(ctx context.Context, storeID, profileName, excludeID string) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM shipping_profiles
	WHERE store_id = $1 AND profile_name = $2 AND ($3 = '' OR id::text <> $3)
)
`
	var exists bool
	err := r.pool.QueryRow(ctx, q, storeID, profileName, excludeID).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) UpdateName(ctx context.Context, id, profileName string) (*domain.ShippingProfile, error) {
	const q = `
UPDATE shipping_profiles
SET profile_name = $2, updated_at = now()
WHERE id = $1
RETURNING ` + profileColumns
	p, err := scanProfile(r.pool.QueryRow(ctx, q, id, profileName))
	if err != nil && db.IsUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return p, err
}

// cascade lists the delete statements in dependency order. Every statement
// takes the profile id as $1.
var cascade = []struct {
	name string
	sql  string
}{
	{"product variants", `DELETE FROM shipping_profile_product_variants WHERE shipping_profile_id = $1`},
	{"location settings", `DELETE FROM shipping_profile_location_settings WHERE shipping_profile_id = $1`},
	{"rates", `
DELETE FROM shipping_zone_rates
WHERE shipping_zone_id IN (SELECT id FROM shipping_zones WHERE shipping_profile_id = $1)`},
	{"state entries", `
DELETE FROM shipping_zone_country_states
WHERE shipping_zone_country_id IN (
	SELECT c.id FROM shipping_zone_countries c
	JOIN shipping_zones z ON z.id = c.shipping_zone_id
	WHERE z.shipping_profile_id = $1
)`},
	{"country entries", `
DELETE FROM shipping_zone_countries
WHERE shipping_zone_id IN (SELECT id FROM shipping_zones WHERE shipping_profile_id = $1)`},
	{"zones", `DELETE FROM shipping_zones WHERE shipping_profile_id = $1`},
}

func (r *postgresRepo) Delete(ctx context.Context, id string) (*domain.ProfileDeleteResult, error) {
	var res domain.ProfileDeleteResult
	counts := []*int64{
		&res.DeletedProductVariants,
		&res.DeletedLocationSettings,
		&res.DeletedRates,
		&res.DeletedStateEntries,
		&res.DeletedCountryEntries,
		&res.DeletedZones,
	}

	err := db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		var locked string
		if err := tx.QueryRow(ctx, `SELECT id::text FROM shipping_profiles WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}

		for i, step := range cascade {
			cmd, err := tx.Exec(ctx, step.sql, id)
			if err != nil {
				return fmt.Errorf("delete %s: %w", step.name, err)
			}
			*counts[i] = cmd.RowsAffected()
		}

		_, err := tx.Exec(ctx, `DELETE FROM shipping_profiles WHERE id = $1`, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.log.Error("shipping profile repo: delete", zap.String("profile_id", id), zap.Error(err))
		}
		return nil, err
	}
	return &res, nil
}
