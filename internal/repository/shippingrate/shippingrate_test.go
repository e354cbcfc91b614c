package shippingrate

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/dbtest"
	"ziplofy-shipping/internal/domain"
)

func TestPostgres_CreateUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	fx := dbtest.NewFixture(t, pool)

	storeID := fx.Store("Demo")
	zoneID := fx.Zone(fx.Profile(storeID, "General"), "Domestic")

	repo := NewPostgres(pool, nil)
	resolved, err := repo.ResolveZoneStore(ctx, zoneID)
	require.NoError(t, err)
	require.Equal(t, storeID, resolved)

	basis := domain.BasisWeight
	minW, maxW := decimal.RequireFromString("0.5"), decimal.RequireFromString("10")
	created, err := repo.Create(ctx, domain.ShippingZoneRate{
		ShippingZoneID:            zoneID,
		StoreID:                   storeID,
		RateType:                  domain.RateTypeFlat,
		ShippingRate:              domain.DefaultShippingRate,
		CustomRateName:            "Standard",
		Price:                     decimal.RequireFromString("9.99"),
		ConditionalPricingEnabled: true,
		ConditionalPricingBasis:   &basis,
		MinWeight:                 &minW,
		MaxWeight:                 &maxW,
	})
	require.NoError(t, err)
	require.True(t, created.Price.Equal(decimal.RequireFromString("9.99")))
	require.True(t, created.MinWeight.Equal(minW))
	require.Nil(t, created.MinPrice)
	require.Equal(t, domain.ConditionalByWeight, created.PricingState())

	created.ConditionalPricingEnabled = false
	created.Normalize()
	updated, err := repo.Update(ctx, *created)
	require.NoError(t, err)
	require.Nil(t, updated.MinWeight)
	require.Nil(t, updated.MaxWeight)
	require.Equal(t, domain.Unconditional, updated.PricingState())

	list, err := repo.ListByZone(ctx, zoneID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	require.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestPostgres_ResolveZoneStoreMissing(t *testing.T) {
	pool := dbtest.Pool(t)
	repo := NewPostgres(pool, nil)

	_, err := repo.ResolveZoneStore(context.Background(), "6f1c3c4e-8f7d-4a57-9a8e-2d3c4b5a6978")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
