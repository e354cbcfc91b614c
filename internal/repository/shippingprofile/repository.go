package shippingprofile

import (
	"context"

	"ziplofy-shipping/internal/domain"
)

// Repository persists shipping profiles. Create and Delete also maintain the
// rows hanging off a profile.
type Repository interface {
	// Create inserts the profile and one create_new settings row for every
	// location the store has at that moment.
	Create(ctx context.Context, storeID, profileName string) (*domain.ShippingProfile, error)
	GetByID(ctx context.Context, id string) (*domain.ShippingProfile, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.ShippingProfile, error)
	NameExists(ctx context.Context, storeID, profileName, excludeID string) (bool, error)
	UpdateName(ctx context.Context, id, profileName string) (*domain.ShippingProfile, error)
	// Delete removes the profile with its variants, settings, zones, zone
	// scoping and rates.
	Delete(ctx context.Context, id string) (*domain.ProfileDeleteResult, error)
}
