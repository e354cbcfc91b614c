package shippingzone

import (
	"context"
	"errors"
	"strings"

	"ziplofy-shipping/internal/domain"
	zonerepo "ziplofy-shipping/internal/repository/shippingzone"
)

type Service struct {
	repo     zonerepo.Repository
	profiles profileReader
	geo      geoReader
}

type profileReader interface {
	GetByID(ctx context.Context, id string) (*domain.ShippingProfile, error)
}

type geoReader interface {
	CountriesByIDs(ctx context.Context, ids []string) ([]domain.Country, error)
	StatesByIDs(ctx context.Context, ids []string) ([]domain.State, error)
}

func New(repo zonerepo.Repository, profiles profileReader, geo geoReader) *Service {
	return &Service{repo: repo, profiles: profiles, geo: geo}
}

type CreateInput struct {
	ShippingProfileID string                    `json:"shippingProfileId"`
	ZoneName          string                    `json:"zoneName"`
	Countries         []domain.ZoneCountryInput `json:"countries"`
}

// UpdateInput applies only the fields that are present. Countries replaces
// the zone's whole scoping.
type UpdateInput struct {
	ZoneName  *string                    `json:"zoneName"`
	Countries *[]domain.ZoneCountryInput `json:"countries"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.ShippingZone, error) {
	if err := domain.ValidateID(in.ShippingProfileID, "shippingProfileId"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ZoneName)
	if name == "" {
		return nil, domain.Validationf("zoneName is required")
	}

	if _, err := s.profiles.GetByID(ctx, in.ShippingProfileID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Shipping profile not found")
		}
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.ShippingProfileID, name, ""); err != nil {
		return nil, err
	}
	if err := s.validateScope(ctx, in.Countries); err != nil {
		return nil, err
	}
	if err := s.ensureNoOverlap(ctx, in.ShippingProfileID, "", in.Countries); err != nil {
		return nil, err
	}

	zone, err := s.repo.Create(ctx, zonerepo.CreateInput{
		ShippingProfileID: in.ShippingProfileID,
		ZoneName:          name,
		Countries:         in.Countries,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, duplicateName()
		}
		return nil, err
	}
	return zone, nil
}

// List returns the profile's zones newest first.
func (s *Service) List(ctx context.Context, profileID string) ([]domain.ShippingZone, error) {
	if err := domain.ValidateID(profileID, "shippingProfileId"); err != nil {
		return nil, err
	}
	return s.repo.ListByProfile(ctx, profileID)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.ShippingZone, error) {
	if err := domain.ValidateID(id, "shipping zone id"); err != nil {
		return nil, err
	}
	if in.ZoneName == nil && in.Countries == nil {
		return nil, domain.Validationf("Provide zoneName or countries to update")
	}

	zone, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	var update zonerepo.UpdateInput
	if in.ZoneName != nil {
		name := strings.TrimSpace(*in.ZoneName)
		if name == "" {
			return nil, domain.Validationf("zoneName cannot be empty")
		}
		if err := s.ensureNameFree(ctx, zone.ShippingProfileID, name, zone.ID); err != nil {
			return nil, err
		}
		update.ZoneName = &name
	}
	if in.Countries != nil {
		if err := s.validateScope(ctx, *in.Countries); err != nil {
			return nil, err
		}
		if err := s.ensureNoOverlap(ctx, zone.ShippingProfileID, zone.ID, *in.Countries); err != nil {
			return nil, err
		}
		update.Countries = in.Countries
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, duplicateName()
		}
		return nil, notFound(err)
	}
	return updated, nil
}

// Delete removes the zone, its scoping and its rates.
func (s *Service) Delete(ctx context.Context, id string) (*domain.ZoneDeleteResult, error) {
	if err := domain.ValidateID(id, "shipping zone id"); err != nil {
		return nil, err
	}
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return res, nil
}

func (s *Service) ensureNameFree(ctx context.Context, profileID, name, excludeID string) error {
	exists, err := s.repo.NameExists(ctx, profileID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return duplicateName()
	}
	return nil
}

// validateScope checks the requested countries and states: well formed and
// unique first, then present in the reference data, then every state nested
// under the country it belongs to.
func (s *Service) validateScope(ctx context.Context, countries []domain.ZoneCountryInput) error {
	if len(countries) == 0 {
		return domain.Validationf("countries must be a non-empty array")
	}

	seenCountries := make(map[string]bool, len(countries))
	countryIDs := make([]string, 0, len(countries))
	for _, c := range countries {
		if err := domain.ValidateID(c.CountryID, "countryId"); err != nil {
			return err
		}
		if seenCountries[c.CountryID] {
			return domain.Validationf("Duplicate countryId %s in countries", c.CountryID)
		}
		seenCountries[c.CountryID] = true
		countryIDs = append(countryIDs, c.CountryID)
	}

	// a state may be declared once across the whole request
	declared := map[string]string{}
	var stateIDs []string
	for _, c := range countries {
		for _, st := range c.StateIDs {
			if err := domain.ValidateID(st, "stateId"); err != nil {
				return err
			}
			if prev, ok := declared[st]; ok {
				if prev == c.CountryID {
					return domain.Validationf("Duplicate stateId %s for country %s", st, c.CountryID)
				}
				return domain.Validationf("stateId %s is listed under both country %s and country %s", st, prev, c.CountryID)
			}
			declared[st] = c.CountryID
			stateIDs = append(stateIDs, st)
		}
	}

	found, err := s.geo.CountriesByIDs(ctx, countryIDs)
	if err != nil {
		return err
	}
	if len(found) != len(countryIDs) {
		known := make(map[string]bool, len(found))
		for _, c := range found {
			known[c.ID] = true
		}
		for _, id := range countryIDs {
			if !known[id] {
				return domain.NotFoundf("Country not found: %s", id)
			}
		}
	}

	if len(stateIDs) == 0 {
		return nil
	}
	states, err := s.geo.StatesByIDs(ctx, stateIDs)
	if err != nil {
		return err
	}
	owner := make(map[string]string, len(states))
	for _, st := range states {
		owner[st.ID] = st.CountryID
	}
	for _, id := range stateIDs {
		countryID, ok := owner[id]
		if !ok {
			return domain.NotFoundf("State not found: %s", id)
		}
		if countryID != declared[id] {
			return domain.Validationf("State %s does not belong to country %s", id, declared[id])
		}
	}
	return nil
}

// ensureNoOverlap rejects countries or states already claimed by another
// zone of the same profile.
func (s *Service) ensureNoOverlap(ctx context.Context, profileID, excludeID string, countries []domain.ZoneCountryInput) error {
	siblings, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return err
	}
	zoneName, countryID, stateID, found := domain.Reserve(siblings, excludeID).Overlap(countries)
	if !found {
		return nil
	}
	if stateID != "" {
		return domain.Conflictf("State %s is already assigned to zone %q", stateID, zoneName)
	}
	return domain.Conflictf("Country %s is already assigned to zone %q", countryID, zoneName)
}

func duplicateName() error {
	return domain.Conflictf("A shipping zone with this name already exists in this profile")
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundf("Shipping zone not found")
	}
	return err
}
