package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ziplofy-shipping/internal/db"
)

// Fixed ids keep reruns from duplicating rows that have no natural key.
const (
	DemoStoreID   = "5e6d0000-0000-4000-8000-000000000001"
	demoProductID = "5e6d0000-0000-4000-8000-000000000100"
)

type locationSeed struct {
	ID, Name, Address, City, CountryCode string
}

type countrySeed struct {
	ISO2, Name, Flag string
	States           [][2]string // code, name
}

type variantSeed struct {
	ID, SKU, Title string
}

var (
	locations = []locationSeed{
		{"5e6d0000-0000-4000-8000-000000000010", "Bengaluru Warehouse", "12 MG Road", "Bengaluru", "IN"},
		{"5e6d0000-0000-4000-8000-000000000011", "Newark Fulfillment", "400 Port St", "Newark", "US"},
	}

	countries = []countrySeed{
		{"IN", "India", "🇮🇳", [][2]string{{"KA", "Karnataka"}, {"MH", "Maharashtra"}, {"TN", "Tamil Nadu"}, {"DL", "Delhi"}}},
		{"US", "United States", "🇺🇸", [][2]string{{"CA", "California"}, {"NY", "New York"}, {"TX", "Texas"}, {"NJ", "New Jersey"}}},
		{"CA", "Canada", "🇨🇦", [][2]string{{"ON", "Ontario"}, {"QC", "Quebec"}, {"BC", "British Columbia"}}},
		{"DE", "Germany", "🇩🇪", nil},
	}

	variants = []variantSeed{
		{"5e6d0000-0000-4000-8000-000000000101", "SKU-DEMO-TEE-S", "Small"},
		{"5e6d0000-0000-4000-8000-000000000102", "SKU-DEMO-TEE-M", "Medium"},
		{"5e6d0000-0000-4000-8000-000000000103", "SKU-DEMO-TEE-L", "Large"},
	}
)

// Apply inserts demo data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	return db.InTx(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
INSERT INTO stores (id, name) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, DemoStoreID, "Demo Store"); err != nil {
			return fmt.Errorf("upsert store: %w", err)
		}

		for _, l := range locations {
			if err := upsertLocation(ctx, tx, l); err != nil {
				return fmt.Errorf("upsert location %s: %w", l.Name, err)
			}
		}
		for _, c := range countries {
			if err := upsertCountry(ctx, tx, c); err != nil {
				return fmt.Errorf("upsert country %s: %w", c.ISO2, err)
			}
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO products (id, store_id, title, image_urls) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, image_urls = EXCLUDED.image_urls`,
			demoProductID, DemoStoreID, "Demo T-Shirt", []string{"https://cdn.example.com/demo-tee.png"}); err != nil {
			return fmt.Errorf("upsert product: %w", err)
		}
		for _, v := range variants {
			if _, err := tx.Exec(ctx, `
INSERT INTO product_variants (id, product_id, sku, title) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET sku = EXCLUDED.sku, title = EXCLUDED.title`,
				v.ID, demoProductID, v.SKU, v.Title); err != nil {
				return fmt.Errorf("upsert variant %s: %w", v.SKU, err)
			}
		}
		return nil
	})
}

func upsertLocation(ctx context.Context, q db.Querier, l locationSeed) error {
	const stmt = `
INSERT INTO locations (id, store_id, name, address, city, country_code)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    address = EXCLUDED.address,
    city = EXCLUDED.city,
    country_code = EXCLUDED.country_code
`
	_, err := q.Exec(ctx, stmt, l.ID, DemoStoreID, l.Name, l.Address, l.City, l.CountryCode)
	return err
}

func upsertCountry(ctx context.Context, q db.Querier, c countrySeed) error {
	const stmt = `
INSERT INTO countries (iso2, name, flag) VALUES ($1, $2, $3)
ON CONFLICT (iso2) DO UPDATE SET name = EXCLUDED.name, flag = EXCLUDED.flag
RETURNING id::text
`
	var id string
	if err := q.QueryRow(ctx, stmt, c.ISO2, c.Name, c.Flag).Scan(&id); err != nil {
		return err
	}
	for _, s := range c.States {
		if _, err := q.Exec(ctx, `
INSERT INTO states (country_id, code, name) VALUES ($1, $2, $3)
ON CONFLICT (country_id, code) WHERE code <> '' DO UPDATE SET name = EXCLUDED.name`, id, s[0], s[1]); err != nil {
			return fmt.Errorf("state %s: %w", s[0], err)
		}
	}
	return nil
}
