package geo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/refcache"
	georepo "ziplofy-shipping/internal/repository/geo"
)

const allCountriesKey = "countries"

// Service serves country and state reference data through a cache.
type Service struct {
	countries *refcache.Cache[[]domain.Country]
	states    *refcache.Cache[[]domain.State]
}

func New(
	repo georepo.Repository,
	countryStore refcache.Store[[]domain.Country],
	stateStore refcache.Store[[]domain.State],
	ttl time.Duration,
	log *zap.Logger,
) *Service {
	return &Service{
		countries: refcache.New(countryStore, func(ctx context.Context, _ string) ([]domain.Country, error) {
			return repo.ListCountries(ctx)
		}, ttl, log),
		states: refcache.New(stateStore, func(ctx context.Context, countryID string) ([]domain.State, error) {
			return repo.ListStates(ctx, countryID)
		}, ttl, log),
	}
}

func (s *Service) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.countries.GetOrFetch(ctx, allCountriesKey)
}

func (s *Service) ListStates(ctx context.Context, countryID string) ([]domain.State, error) {
	if err := domain.ValidateID(countryID, "country id"); err != nil {
		return nil, err
	}
	return s.states.GetOrFetch(ctx, countryID)
}

// Invalidate drops cached countries and the states of the given countries.
func (s *Service) Invalidate(ctx context.Context, countryIDs ...string) error {
	if err := s.countries.Invalidate(ctx, allCountriesKey); err != nil {
		return err
	}
	for _, id := range countryIDs {
		if err := s.states.Invalidate(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
