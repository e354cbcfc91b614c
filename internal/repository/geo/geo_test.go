package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/db"
	"ziplofy-shipping/internal/dbtest"
	"ziplofy-shipping/internal/domain"
)

func TestPostgres_CountriesAndStates(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	fx := dbtest.NewFixture(t, pool)

	us := fx.Country("United States", "US")
	de := fx.Country("Germany", "DE")
	ca := fx.State(us, "California", "CA")
	fx.State(us, "Alabama", "AL")

	repo := NewPostgres(pool)
	countries, err := repo.ListCountries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 2)
	require.Equal(t, "Germany", countries[0].Name)

	c, err := repo.GetCountryByISO2(ctx, "us")
	require.NoError(t, err)
	require.Equal(t, us, c.ID)

	_, err = repo.GetCountryByISO2(ctx, "FR")
	require.ErrorIs(t, err, domain.ErrNotFound)

	byID, err := repo.CountriesByIDs(ctx, []string{us, de})
	require.NoError(t, err)
	require.Len(t, byID, 2)

	states, err := repo.ListStates(ctx, us)
	require.NoError(t, err)
	require.Len(t, states, 2)
	require.Equal(t, "Alabama", states[0].Name)

	picked, err := repo.StatesByIDs(ctx, []string{ca})
	require.NoError(t, err)
	require.Len(t, picked, 1)
	require.Equal(t, us, picked[0].CountryID)
}

func TestPostgres_StateCodesOptional(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	fx := dbtest.NewFixture(t, pool)

	de := fx.Country("Germany", "DE")
	fx.State(de, "Bavaria", "")
	fx.State(de, "Saxony", "")
	fx.State(de, "Berlin", "BE")

	states, err := NewPostgres(pool).ListStates(ctx, de)
	require.NoError(t, err)
	require.Len(t, states, 3)

	_, err = pool.Exec(ctx, `INSERT INTO states (country_id, name, code) VALUES ($1, 'Berlin again', 'BE')`, de)
	require.True(t, db.IsUniqueViolation(err), "err: %v", err)
}
