package locationsettings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ziplofy-shipping/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const selectSettings = `
SELECT s.id::text, s.shipping_profile_id::text, s.location_id::text, s.store_id::text, s.rate_mode,
	l.id::text, l.store_id::text, l.name, l.address, l.city, l.country_code, l.created_at
FROM shipping_profile_location_settings s
LEFT JOIN locations l ON l.id = s.location_id
`

func scanSetting(row pgx.Row) (*domain.LocationSetting, error) {
	var (
		s         domain.LocationSetting
		mode      string
		locID     *string
		locStore  *string
		name      *string
		address   *string
		city      *string
		country   *string
		createdAt *time.Time
	)
	if err := row.Scan(&s.ID, &s.ShippingProfileID, &s.LocationID, &s.StoreID, &mode,
		&locID, &locStore, &name, &address, &city, &country, &createdAt); err != nil {
		return nil, err
	}
	s.Mode = domain.RateGenerationMode(mode)
	if locID != nil {
		s.Location = &domain.Location{
			ID:          *locID,
			StoreID:     deref(locStore),
			Name:        deref(name),
			Address:     deref(address),
			City:        deref(city),
			CountryCode: deref(country),
		}
		if createdAt != nil {
			s.Location.CreatedAt = *createdAt
		}
	}
	return &s, nil
}

func (r *postgresRepo) ListByProfiles(ctx context.Context, profileIDs []string) ([]domain.LocationSetting, error) {
	if len(profileIDs) == 0 {
		return []domain.LocationSetting{}, nil
	}
	rows, err := r.pool.Query(ctx, selectSettings+`
WHERE s.shipping_profile_id = ANY($1::text[]::uuid[])
ORDER BY s.created_at ASC, s.id ASC
`, profileIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.LocationSetting{}
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) UpdateMode(ctx context.Context, profileID, locationID string, mode domain.RateGenerationMode) (*domain.LocationSetting, error) {
	const q = `
UPDATE shipping_profile_location_settings
SET rate_mode = $3, updated_at = now()
WHERE shipping_profile_id = $1 AND location_id = $2
RETURNING id::text
`
	var id string
	if err := r.pool.QueryRow(ctx, q, profileID, locationID, string(mode)).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	s, err := scanSetting(r.pool.QueryRow(ctx, selectSettings+`WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
