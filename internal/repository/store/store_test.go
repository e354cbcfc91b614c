package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/dbtest"
	"ziplofy-shipping/internal/domain"
)

func TestPostgres_Locations(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	fx := dbtest.NewFixture(t, pool)
	storeID := fx.Store("Demo")

	repo := NewPostgres(pool, nil)
	s, err := repo.GetByID(ctx, storeID)
	require.NoError(t, err)
	require.Equal(t, "Demo", s.Name)

	empty, err := repo.ListLocations(ctx, storeID)
	require.NoError(t, err)
	require.Empty(t, empty)
	require.NotNil(t, empty)

	loc, err := repo.CreateLocation(ctx, CreateLocationInput{StoreID: storeID, Name: "Warehouse", City: "Austin", CountryCode: "US"})
	require.NoError(t, err)
	require.Equal(t, "Austin", loc.City)

	list, err := repo.ListLocations(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.DeleteLocation(ctx, loc.ID))
	require.ErrorIs(t, repo.DeleteLocation(ctx, loc.ID), domain.ErrNotFound)
}
