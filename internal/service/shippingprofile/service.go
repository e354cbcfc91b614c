package shippingprofile

import (
	"context"
	"errors"
	"strings"

	"ziplofy-shipping/internal/domain"
	profilerepo "ziplofy-shipping/internal/repository/shippingprofile"
)

type Service struct {
	repo     profilerepo.Repository
	stores   storeReader
	settings settingsLister
	variants variantLister
	zones    zoneIDLister
}

type storeReader interface {
	GetByID(ctx context.Context, id string) (*domain.Store, error)
}

type settingsLister interface {
	ListByProfiles(ctx context.Context, profileIDs []string) ([]domain.LocationSetting, error)
}

type variantLister interface {
	ListByProfiles(ctx context.Context, profileIDs []string) ([]domain.ProfileVariant, error)
}

type zoneIDLister interface {
	IDsByProfiles(ctx context.Context, profileIDs []string) (map[string][]string, error)
}

func New(repo profilerepo.Repository, stores storeReader, settings settingsLister, variants variantLister, zones zoneIDLister) *Service {
	return &Service{repo: repo, stores: stores, settings: settings, variants: variants, zones: zones}
}

func (s *Service) Create(ctx context.Context, storeID, profileName string) (*domain.ShippingProfileDetail, error) {
	if err := domain.ValidateID(storeID, "store id"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(profileName)
	if name == "" {
		return nil, domain.Validationf("profileName is required")
	}

	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Store not found")
		}
		return nil, err
	}
	if err := s.ensureNameFree(ctx, storeID, name, ""); err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, storeID, name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, duplicateName()
		}
		return nil, err
	}
	details, err := s.enrich(ctx, []domain.ShippingProfile{*p})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// List returns the store's profiles newest first.
func (s *Service) List(ctx context.Context, storeID string) ([]domain.ShippingProfileDetail, error) {
	if err := domain.ValidateID(storeID, "store id"); err != nil {
		return nil, err
	}
	profiles, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, profiles)
}

func (s *Service) Update(ctx context.Context, id, profileName string) (*domain.ShippingProfileDetail, error) {
	if err := domain.ValidateID(id, "shipping profile id"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(profileName)
	if name == "" {
		return nil, domain.Validationf("profileName is required")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.ensureNameFree(ctx, current.StoreID, name, id); err != nil {
		return nil, err
	}

	p, err := s.repo.UpdateName(ctx, id, name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, duplicateName()
		}
		return nil, notFound(err)
	}
	details, err := s.enrich(ctx, []domain.ShippingProfile{*p})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Delete removes the profile and everything that hangs off it.
func (s *Service) Delete(ctx context.Context, id string) (*domain.ProfileDeleteResult, error) {
	if err := domain.ValidateID(id, "shipping profile id"); err != nil {
		return nil, err
	}
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return res, nil
}

func (s *Service) ensureNameFree(ctx context.Context, storeID, name, excludeID string) error {
	exists, err := s.repo.NameExists(ctx, storeID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return duplicateName()
	}
	return nil
}

// enrich attaches variants, location settings and zone ids to each profile.
func (s *Service) enrich(ctx context.Context, profiles []domain.ShippingProfile) ([]domain.ShippingProfileDetail, error) {
	out := make([]domain.ShippingProfileDetail, 0, len(profiles))
	if len(profiles) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	settings, err := s.settings.ListByProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	variants, err := s.variants.ListByProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	zoneIDs, err := s.zones.IDsByProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	settingsBy := map[string][]domain.LocationSetting{}
	for _, st := range settings {
		settingsBy[st.ShippingProfileID] = append(settingsBy[st.ShippingProfileID], st)
	}
	variantsBy := map[string][]domain.ProductVariant{}
	for _, v := range variants {
		if v.ProductVariant != nil {
			variantsBy[v.ShippingProfileID] = append(variantsBy[v.ShippingProfileID], *v.ProductVariant)
		}
	}

	for _, p := range profiles {
		d := domain.ShippingProfileDetail{
			ShippingProfile:  p,
			ProductVariants:  orEmpty(variantsBy[p.ID]),
			LocationSettings: orEmpty(settingsBy[p.ID]),
			ShippingZoneIDs:  orEmpty(zoneIDs[p.ID]),
		}
		out = append(out, d)
	}
	return out, nil
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func duplicateName() error {
	return domain.Conflictf("A shipping profile with this name already exists for this store")
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundf("Shipping profile not found")
	}
	return err
}
