package shippingprofile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/dbtest"
	"ziplofy-shipping/internal/domain"
)

func TestPostgres_CreateSeedsLocationSettings(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	fx := dbtest.NewFixture(t, pool)

	storeID := fx.Store("Demo")
	fx.Location(storeID, "Warehouse A")
	fx.Location(storeID, "Warehouse B")

	repo := NewPostgres(pool, nil)
	p, err := repo.Create(ctx, storeID, "General")
	require.NoError(t, err)
	require.Equal(t, "General", p.ProfileName)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `
SELECT count(*) FROM shipping_profile_location_settings
WHERE shipping_profile_id = $1 AND rate_mode = 'create_new'`, p.ID).Scan(&count))
	require.Equal(t, 2, count)

	_, err = repo.Create(ctx, storeID, "General")
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestPostgres_NameExistsAndUpdate(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	fx := dbtest.NewFixture(t, pool)
	storeID := fx.Store("Demo")

	repo := NewPostgres(pool, nil)
	first, err := repo.Create(ctx, storeID, "First")
	require.NoError(t, err)
	second, err := repo.Create(ctx, storeID, "Second")
	require.NoError(t, err)

	exists, err := repo.NameExists(ctx, storeID, "First", "")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.NameExists(ctx, storeID, "First", first.ID)
	require.NoError(t, err)
	require.False(t, exists)

	updated, err := repo.UpdateName(ctx, second.ID, "Renamed")
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.ProfileName)

	list, err := repo.ListByStore(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestPostgres_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	fx := dbtest.NewFixture(t, pool)

	storeID := fx.Store("Demo")
	fx.Location(storeID, "Warehouse")
	variantID := fx.Variant(storeID, "Shirt", "SKU-1")
	countryID := fx.Country("United States", "US")
	stateID := fx.State(countryID, "California", "CA")

	repo := NewPostgres(pool, nil)
	p, err := repo.Create(ctx, storeID, "General")
	require.NoError(t, err)

	var zoneID, entryID string
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO shipping_zones (shipping_profile_id, zone_name) VALUES ($1, 'Domestic') RETURNING id::text`, p.ID).Scan(&zoneID))
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO shipping_zone_countries (shipping_zone_id, country_id) VALUES ($1, $2) RETURNING id::text`, zoneID, countryID).Scan(&entryID))
	_, err = pool.Exec(ctx, `INSERT INTO shipping_zone_country_states (shipping_zone_country_id, state_id) VALUES ($1, $2)`, entryID, stateID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO shipping_zone_rates (shipping_zone_id, store_id, custom_rate_name, price) VALUES ($1, $2, 'Standard', 5)`, zoneID, storeID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO shipping_profile_product_variants (shipping_profile_id, product_variant_id, store_id) VALUES ($1, $2, $3)`, p.ID, variantID, storeID)
	require.NoError(t, err)

	res, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ProfileDeleteResult{
		DeletedZones:            1,
		DeletedCountryEntries:   1,
		DeletedStateEntries:     1,
		DeletedRates:            1,
		DeletedLocationSettings: 1,
		DeletedProductVariants:  1,
	}, *res)

	_, err = repo.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Delete(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
