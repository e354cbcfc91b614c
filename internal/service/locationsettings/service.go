package locationsettings

import (
	"context"
	"errors"

	"ziplofy-shipping/internal/domain"
	settingsrepo "ziplofy-shipping/internal/repository/locationsettings"
)

type Service struct {
	repo settingsrepo.Repository
}

func New(repo settingsrepo.Repository) *Service {
	return &Service{repo: repo}
}

// UpdateInput carries the flag pair clients send. Both flags are required.
type UpdateInput struct {
	CreateNewRates *bool `json:"createNewRates"`
	RemoveRates    *bool `json:"removeRates"`
}

func (s *Service) Get(ctx context.Context, profileID string) ([]domain.LocationSetting, error) {
	if err := domain.ValidateID(profileID, "shipping profile id"); err != nil {
		return nil, err
	}
	return s.repo.ListByProfiles(ctx, []string{profileID})
}

func (s *Service) Update(ctx context.Context, profileID, locationID string, in UpdateInput) (*domain.LocationSetting, error) {
	if err := domain.ValidateID(profileID, "shipping profile id"); err != nil {
		return nil, err
	}
	if err := domain.ValidateID(locationID, "location id"); err != nil {
		return nil, err
	}
	if in.CreateNewRates == nil || in.RemoveRates == nil {
		return nil, domain.Validationf("createNewRates and removeRates are required")
	}
	mode, ok := domain.RateModeFromFlags(*in.CreateNewRates, *in.RemoveRates)
	if !ok {
		return nil, domain.Validationf("Exactly one of createNewRates and removeRates must be true")
	}

	setting, err := s.repo.UpdateMode(ctx, profileID, locationID, mode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Location settings not found for this profile")
		}
		return nil, err
	}
	return setting, nil
}
