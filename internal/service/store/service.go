package store

import (
	"context"
	"errors"
	"strings"

	"ziplofy-shipping/internal/domain"
	storerepo "ziplofy-shipping/internal/repository/store"
)

type Service struct {
	repo storerepo.Repository
}

func New(repo storerepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateLocationInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode" binding:"omitempty,len=2"`
}

func (s *Service) ListLocations(ctx context.Context, storeID string) ([]domain.Location, error) {
	if err := s.ensureStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.repo.ListLocations(ctx, storeID)
}

// CreateLocation adds a location to the store. Existing shipping profiles do
// not get settings for it.
func (s *Service) CreateLocation(ctx context.Context, storeID string, in CreateLocationInput) (*domain.Location, error) {
	if err := domain.ValidateID(storeID, "store id"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("name is required")
	}
	if err := s.ensureStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.repo.CreateLocation(ctx, storerepo.CreateLocationInput{
		StoreID:     storeID,
		Name:        name,
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		CountryCode: strings.ToUpper(strings.TrimSpace(in.CountryCode)),
	})
}

func (s *Service) DeleteLocation(ctx context.Context, id string) error {
	if err := domain.ValidateID(id, "location id"); err != nil {
		return err
	}
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("Location not found")
		}
		return err
	}
	return nil
}

func (s *Service) ensureStore(ctx context.Context, storeID string) error {
	if err := domain.ValidateID(storeID, "store id"); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("Store not found")
		}
		return err
	}
	return nil
}
