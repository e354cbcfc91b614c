package geo

import (
	"context"

	"ziplofy-shipping/internal/domain"
)

// Repository serves the read-only country and state reference data.
type Repository interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	GetCountryByISO2(ctx context.Context, iso2 string) (*domain.Country, error)
	CountriesByIDs(ctx context.Context, ids []string) ([]domain.Country, error)
	ListStates(ctx context.Context, countryID string) ([]domain.State, error)
	StatesByIDs(ctx context.Context, ids []string) ([]domain.State, error)
}
