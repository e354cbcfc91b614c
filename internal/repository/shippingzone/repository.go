package shippingzone

import (
	"context"

	"ziplofy-shipping/internal/domain"
)

type CreateInput struct {
	ShippingProfileID string
	ZoneName          string
	Countries         []domain.ZoneCountryInput
}

// UpdateInput changes only the non-nil fields. Countries replaces the whole
// scoping of the zone.
type UpdateInput struct {
	ZoneName  *string
	Countries *[]domain.ZoneCountryInput
}

// Repository persists zones with their country and state scoping. Zones are
// always returned in their flattened form.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.ShippingZone, error)
	GetByID(ctx context.Context, id string) (*domain.ShippingZone, error)
	ListByProfile(ctx context.Context, profileID string) ([]domain.ShippingZone, error)
	// IDsByProfiles maps each profile id to its zone ids, newest first.
	IDsByProfiles(ctx context.Context, profileIDs []string) (map[string][]string, error)
	NameExists(ctx context.Context, profileID, zoneName, excludeID string) (bool, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.ShippingZone, error)
	// Delete removes the zone with its scoping and rates.
	Delete(ctx context.Context, id string) (*domain.ZoneDeleteResult, error)
}
