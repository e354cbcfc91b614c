package store

import (
	"context"

	"ziplofy-shipping/internal/domain"
)

type CreateLocationInput struct {
	StoreID     string
	Name        string
	Address     string
	City        string
	CountryCode string
}

// Repository reads stores and manages their fulfillment locations.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	ListLocations(ctx context.Context, storeID string) ([]domain.Location, error)
	CreateLocation(ctx context.Context, in CreateLocationInput) (*domain.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}
