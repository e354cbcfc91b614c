package shippingzone

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

const zoneColumns = `id::text, shipping_profile_id::text, zone_name, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.ShippingZone, error) {
	var id string
	err := db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
INSERT INTO shipping_zones (shipping_profile_id, zone_name)
VALUES ($1, $2)
RETURNING id::text
`, in.ShippingProfileID, in.ZoneName).Scan(&id); err != nil {
			return err
		}
		return insertScope(ctx, tx, id, in.Countries)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.log.Error("shipping zone repo: create", zap.String("profile_id", in.ShippingProfileID), zap.Error(err))
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func insertScope(ctx context.Context, tx pgx.Tx, zoneID string, countries []domain.ZoneCountryInput) error {
	for i, c := range countries {
		var entryID string
		if err := tx.QueryRow(ctx, `
INSERT INTO shipping_zone_countries (shipping_zone_id, country_id, position)
VALUES ($1, $2, $3)
RETURNING id::text
`, zoneID, c.CountryID, i).Scan(&entryID); err != nil {
			return fmt.Errorf("insert country entry: %w", err)
		}
		for j, stateID := range c.StateIDs {
			if _, err := tx.Exec(ctx, `
INSERT INTO shipping_zone_country_states (shipping_zone_country_id, state_id, position)
VALUES ($1, $2, $3)
`, entryID, stateID, j); err != nil {
				return fmt.Errorf("insert state entry: %w", err)
			}
		}
	}
	return nil
}

const deleteStatesOfZone = `
DELETE FROM shipping_zone_country_states
WHERE shipping_zone_country_id IN (SELECT id FROM shipping_zone_countries WHERE shipping_zone_id = $1)`

const deleteCountriesOfZone = `DELETE FROM shipping_zone_countries WHERE shipping_zone_id = $1`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ShippingZone, error) {
	zones, err := r.query(ctx, `SELECT `+zoneColumns+` FROM shipping_zones WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, domain.ErrNotFound
	}
	return &zones[0], nil
}

func (r *postgresRepo) ListByProfile(ctx context.Context, profileID string) ([]domain.ShippingZone, error) {
	return r.query(ctx, `
SELECT `+zoneColumns+`
FROM shipping_zones
WHERE shipping_profile_id = $1
ORDER BY created_at DESC, id DESC
`, profileID)
}

// query loads zones and flattens their country and state entries.
func (r *postgresRepo) query(ctx context.Context, q string, args ...any) ([]domain.ShippingZone, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.log.Error("shipping zone repo: query", zap.Error(err))
		return nil, err
	}
	zones := []domain.ShippingZone{}
	index := map[string]int{}
	for rows.Next() {
		var z domain.ShippingZone
		if err := rows.Scan(&z.ID, &z.ShippingProfileID, &z.ZoneName, &z.CreatedAt, &z.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		z.Countries = []domain.ZoneCountry{}
		index[z.ID] = len(zones)
		zones = append(zones, z)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return zones, nil
	}

	zoneIDs := make([]string, 0, len(zones))
	for _, z := range zones {
		zoneIDs = append(zoneIDs, z.ID)
	}

	type ref struct{ zone, country int }
	entries := map[string]ref{}
	var entryIDs []string

	rows, err = r.pool.Query(ctx, `
SELECT e.id::text, e.shipping_zone_id::text, c.id::text, c.name, c.iso2, c.flag,
	(SELECT count(*) FROM states s WHERE s.country_id = c.id)
FROM shipping_zone_countries e
JOIN countries c ON c.id = e.country_id
WHERE e.shipping_zone_id = ANY($1::text[]::uuid[])
ORDER BY e.position ASC, e.created_at ASC
`, zoneIDs)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			entryID, zoneID string
			c               domain.ZoneCountry
		)
		if err := rows.Scan(&entryID, &zoneID, &c.CountryID, &c.CountryName, &c.CountryISO2, &c.CountryFlag, &c.TotalStatesCount); err != nil {
			rows.Close()
			return nil, err
		}
		c.StateIDs = []string{}
		zi := index[zoneID]
		entries[entryID] = ref{zone: zi, country: len(zones[zi].Countries)}
		entryIDs = append(entryIDs, entryID)
		zones[zi].Countries = append(zones[zi].Countries, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entryIDs) == 0 {
		return zones, nil
	}

	rows, err = r.pool.Query(ctx, `
SELECT shipping_zone_country_id::text, state_id::text
FROM shipping_zone_country_states
WHERE shipping_zone_country_id = ANY($1::text[]::uuid[])
ORDER BY position ASC, created_at ASC
`, entryIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var entryID, stateID string
		if err := rows.Scan(&entryID, &stateID); err != nil {
			return nil, err
		}
		at := entries[entryID]
		c := &zones[at.zone].Countries[at.country]
		c.StateIDs = append(c.StateIDs, stateID)
		c.SelectedStatesCount = len(c.StateIDs)
	}
	return zones, rows.Err()
}

func (r *postgresRepo) IDsByProfiles(ctx context.Context, profileIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(profileIDs))
	if len(profileIDs) == 0 {
		return result, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT shipping_profile_id::text, id::text
FROM shipping_zones
WHERE shipping_profile_id = ANY($1::text[]::uuid[])
ORDER BY created_at DESC, id DESC
`, profileIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var profileID, id string
		if err := rows.Scan(&profileID, &id); err != nil {
			return nil, err
		}
		result[profileID] = append(result[profileID], id)
	}
	return result, rows.Err()
}

func (r *postgresRepo) NameExists(ctx context.Context, profileID, zoneName, excludeID string) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM shipping_zones
	WHERE shipping_profile_id = $1 AND zone_name = $2 AND ($3 = '' OR id::text <> $3)
)
`
	var exists bool
	err := r.pool.QueryRow(ctx, q, profileID, zoneName, excludeID).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.ShippingZone, error) {
	err := db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
UPDATE shipping_zones
SET zone_name = COALESCE($2, zone_name), updated_at = now()
WHERE id = $1
`, id, in.ZoneName)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if in.Countries == nil {
			return nil
		}

		if _, err := tx.Exec(ctx, deleteStatesOfZone, id); err != nil {
			return fmt.Errorf("clear state entries: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteCountriesOfZone, id); err != nil {
			return fmt.Errorf("clear country entries: %w", err)
		}
		return insertScope(ctx, tx, id, *in.Countries)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		if !errors.Is(err, domain.ErrNotFound) {
			r.log.Error("shipping zone repo: update", zap.String("zone_id", id), zap.Error(err))
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) (*domain.ZoneDeleteResult, error) {
	var res domain.ZoneDeleteResult
	err := db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		var locked string
		if err := tx.QueryRow(ctx, `SELECT id::text FROM shipping_zones WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}

		cmd, err := tx.Exec(ctx, deleteStatesOfZone, id)
		if err != nil {
			return fmt.Errorf("delete state entries: %w", err)
		}
		res.DeletedStates = cmd.RowsAffected()

		if cmd, err = tx.Exec(ctx, deleteCountriesOfZone, id); err != nil {
			return fmt.Errorf("delete country entries: %w", err)
		}
		res.DeletedCountries = cmd.RowsAffected()

		if cmd, err = tx.Exec(ctx, `DELETE FROM shipping_zone_rates WHERE shipping_zone_id = $1`, id); err != nil {
			return fmt.Errorf("delete rates: %w", err)
		}
		res.DeletedRates = cmd.RowsAffected()

		_, err = tx.Exec(ctx, `DELETE FROM shipping_zones WHERE id = $1`, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.log.Error("shipping zone repo: delete", zap.String("zone_id", id), zap.Error(err))
		}
		return nil, err
	}
	return &res, nil
}
