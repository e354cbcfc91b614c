package shippingrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

// Amounts travel as text so numeric precision is kept end to end.
const rateColumns = `id::text, shipping_zone_id::text, store_id::text, rate_type, shipping_rate,
	custom_rate_name, custom_delivery_description, price::text, conditional_pricing_enabled,
	conditional_pricing_basis, min_weight::text, max_weight::text, min_price::text, max_price::text,
	created_at, updated_at`

func scanRate(row pgx.Row) (*domain.ShippingZoneRate, error) {
	var (
		rt                                       domain.ShippingZoneRate
		rateType, price                          string
		basis                                    *string
		minWeight, maxWeight, minPrice, maxPrice *string
	)
	if err := row.Scan(&rt.ID, &rt.ShippingZoneID, &rt.StoreID, &rateType, &rt.ShippingRate,
		&rt.CustomRateName, &rt.CustomDeliveryDescription, &price, &rt.ConditionalPricingEnabled,
		&basis, &minWeight, &maxWeight, &minPrice, &maxPrice,
		&rt.CreatedAt, &rt.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rt.RateType = domain.RateType(rateType)
	if basis != nil {
		b := domain.PricingBasis(*basis)
		rt.ConditionalPricingBasis = &b
	}

	var err error
	if rt.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	for _, f := range []struct {
		src *string
		dst **decimal.Decimal
	}{
		{minWeight, &rt.MinWeight},
		{maxWeight, &rt.MaxWeight},
		{minPrice, &rt.MinPrice},
		{maxPrice, &rt.MaxPrice},
	} {
		if f.src == nil {
			continue
		}
		d, err := decimal.NewFromString(*f.src)
		if err != nil {
			return nil, fmt.Errorf("parse bound: %w", err)
		}
		*f.dst = &d
	}
	return &rt, nil
}

func text(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func basisArg(b *domain.PricingBasis) *string {
	if b == nil {
		return nil
	}
	s := string(*b)
	return &s
}

func (r *postgresRepo) ResolveZoneStore(ctx context.Context, zoneID string) (string, error) {
	const q = `
SELECT p.store_id::text
FROM shipping_zones z
JOIN shipping_profiles p ON p.id = z.shipping_profile_id
WHERE z.id = $1
`
	var storeID string
	if err := r.pool.QueryRow(ctx, q, zoneID).Scan(&storeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return storeID, nil
}

func (r *postgresRepo) Create(ctx context.Context, rt domain.ShippingZoneRate) (*domain.ShippingZoneRate, error) {
	const q = `
INSERT INTO shipping_zone_rates (
	shipping_zone_id, store_id, rate_type, shipping_rate, custom_rate_name, custom_delivery_description,
	price, conditional_pricing_enabled, conditional_pricing_basis, min_weight, max_weight, min_price, max_price
)
VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10::numeric, $11::numeric, $12::numeric, $13::numeric)
RETURNING ` + rateColumns
	created, err := scanRate(r.pool.QueryRow(ctx, q,
		rt.ShippingZoneID, rt.StoreID, string(rt.RateType), rt.ShippingRate, rt.CustomRateName, rt.CustomDeliveryDescription,
		rt.Price.String(), rt.ConditionalPricingEnabled, basisArg(rt.ConditionalPricingBasis),
		text(rt.MinWeight), text(rt.MaxWeight), text(rt.MinPrice), text(rt.MaxPrice)))
	if err != nil {
		r.log.Error("shipping rate repo: create", zap.String("zone_id", rt.ShippingZoneID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ShippingZoneRate, error) {
	return scanRate(r.pool.QueryRow(ctx, `SELECT `+rateColumns+` FROM shipping_zone_rates WHERE id = $1`, id))
}

func (r *postgresRepo) ListByZone(ctx context.Context, zoneID string) ([]domain.ShippingZoneRate, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+rateColumns+`
FROM shipping_zone_rates
WHERE shipping_zone_id = $1
ORDER BY created_at DESC, id DESC
`, zoneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ShippingZoneRate{}
	for rows.Next() {
		rt, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rt)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, rt domain.ShippingZoneRate) (*domain.ShippingZoneRate, error) {
	const q = `
UPDATE shipping_zone_rates
SET rate_type = $2,
    shipping_rate = $3,
    custom_rate_name = $4,
    custom_delivery_description = $5,
    price = $6::numeric,
    conditional_pricing_enabled = $7,
    conditional_pricing_basis = $8,
    min_weight = $9::numeric,
    max_weight = $10::numeric,
    min_price = $11::numeric,
    max_price = $12::numeric,
    updated_at = now()
WHERE id = $1
RETURNING ` + rateColumns
	updated, err := scanRate(r.pool.QueryRow(ctx, q,
		rt.ID, string(rt.RateType), rt.ShippingRate, rt.CustomRateName, rt.CustomDeliveryDescription,
		rt.Price.String(), rt.ConditionalPricingEnabled, basisArg(rt.ConditionalPricingBasis),
		text(rt.MinWeight), text(rt.MaxWeight), text(rt.MinPrice), text(rt.MaxPrice)))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		r.log.Error("shipping rate repo: update", zap.String("rate_id", rt.ID), zap.Error(err))
	}
	return updated, err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shipping_zone_rates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
