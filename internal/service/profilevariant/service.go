package profilevariant

import (
	"context"
	"errors"

	"ziplofy-shipping/internal/domain"
	variantrepo "ziplofy-shipping/internal/repository/profilevariant"
)

type Service struct {
	repo     variantrepo.Repository
	profiles profileReader
}

type profileReader interface {
	GetByID(ctx context.Context, id string) (*domain.ShippingProfile, error)
}

func New(repo variantrepo.Repository, profiles profileReader) *Service {
	return &Service{repo: repo, profiles: profiles}
}

func (s *Service) List(ctx context.Context, profileID string) ([]domain.ProfileVariant, error) {
	if err := domain.ValidateID(profileID, "shipping profile id"); err != nil {
		return nil, err
	}
	return s.repo.ListByProfiles(ctx, []string{profileID})
}

// Create attaches a variant to the profile. The variant's product must
// belong to the profile's store.
func (s *Service) Create(ctx context.Context, profileID, productVariantID string) (*domain.ProfileVariant, error) {
	if err := domain.ValidateID(profileID, "shipping profile id"); err != nil {
		return nil, err
	}
	if err := domain.ValidateID(productVariantID, "productVariantId"); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Shipping profile not found")
		}
		return nil, err
	}
	variant, err := s.repo.GetVariant(ctx, productVariantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Product variant not found")
		}
		return nil, err
	}
	if variant.StoreID != profile.StoreID {
		return nil, domain.Forbiddenf("Product variant does not belong to this store")
	}

	entry, err := s.repo.Create(ctx, variantrepo.CreateInput{
		ShippingProfileID: profile.ID,
		ProductVariantID:  variant.ID,
		StoreID:           profile.StoreID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Conflictf("Product variant is already in this shipping profile")
		}
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := domain.ValidateID(id, "id"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("Product variant entry not found")
		}
		return err
	}
	return nil
}
