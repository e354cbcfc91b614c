package profilevariant

import (
	"context"
	"errors"

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

const variantColumns = `v.id::text, v.product_id::text, p.store_id::text, v.sku, v.title, p.title, p.image_urls`

func scanVariant(row pgx.Row, extra ...any) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	dest := append(extra, &v.ID, &v.ProductID, &v.StoreID, &v.SKU, &v.Title, &v.ProductTitle, &v.ProductImageURLs)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if v.ProductImageURLs == nil {
		v.ProductImageURLs = []string{}
	}
	return &v, nil
}

func (r *postgresRepo) GetVariant(ctx context.Context, variantID string) (*domain.ProductVariant, error) {
	const q = `
SELECT ` + variantColumns + `
FROM product_variants v
JOIN products p ON p.id = v.product_id
WHERE v.id = $1
`
	return scanVariant(r.pool.QueryRow(ctx, q, variantID))
}

const selectEntries = `
SELECT e.id::text, e.shipping_profile_id::text, e.store_id::text, e.created_at, ` + variantColumns + `
FROM shipping_profile_product_variants e
JOIN product_variants v ON v.id = e.product_variant_id
JOIN products p ON p.id = v.product_id
`

func scanEntry(row pgx.Row) (*domain.ProfileVariant, error) {
	var e domain.ProfileVariant
	v, err := scanVariant(row, &e.ID, &e.ShippingProfileID, &e.StoreID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.ProductVariantID = v.ID
	e.ProductVariant = v
	return &e, nil
}

func (r *postgresRepo) ListByProfiles(ctx context.Context, profileIDs []string) ([]domain.ProfileVariant, error) {
	if len(profileIDs) == 0 {
		return []domain.ProfileVariant{}, nil
	}
	rows, err := r.pool.Query(ctx, selectEntries+`
WHERE e.shipping_profile_id = ANY($1::text[]::uuid[])
ORDER BY e.created_at ASC, e.id ASC
`, profileIDs)
	if err != nil {
		r.log.Error("profile variant repo: list", zap.Strings("profile_ids", profileIDs), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.ProfileVariant{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.ProfileVariant, error) {
	const q = `
INSERT INTO shipping_profile_product_variants (shipping_profile_id, product_variant_id, store_id)
VALUES ($1, $2, $3)
RETURNING id::text
`
	var id string
	if err := r.pool.QueryRow(ctx, q, in.ShippingProfileID, in.ProductVariantID, in.StoreID).Scan(&id); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.log.Error("profile variant repo: create",
			zap.String("profile_id", in.ShippingProfileID),
			zap.String("variant_id", in.ProductVariantID),
			zap.Error(err))
		return nil, err
	}
	return scanEntry(r.pool.QueryRow(ctx, selectEntries+`WHERE e.id = $1`, id))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shipping_profile_product_variants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
