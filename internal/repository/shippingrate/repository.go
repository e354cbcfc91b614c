package shippingrate

import (
	"context"

	"ziplofy-shipping/internal/domain"
)

// Repository persists shipping zone rates.
type Repository interface {
	// ResolveZoneStore follows zone -> profile -> store and returns the store
	// id. ErrNotFound when the zone or its profile is gone.
	ResolveZoneStore(ctx context.Context, zoneID string) (string, error)
	Create(ctx context.Context, rate domain.ShippingZoneRate) (*domain.ShippingZoneRate, error)
	GetByID(ctx context.Context, id string) (*domain.ShippingZoneRate, error)
	ListByZone(ctx context.Context, zoneID string) ([]domain.ShippingZoneRate, error)
	// Update overwrites every mutable column of the rate.
	Update(ctx context.Context, rate domain.ShippingZoneRate) (*domain.ShippingZoneRate, error)
	Delete(ctx context.Context, id string) error
}
