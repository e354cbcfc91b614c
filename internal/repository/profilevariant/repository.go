package profilevariant

import (
	"context"

	"ziplofy-shipping/internal/domain"
)

type CreateInput struct {
	ShippingProfileID string
	ProductVariantID  string
	StoreID           string
}

// Repository manages the product variants attached to shipping profiles.
type Repository interface {
	ListByProfiles(ctx context.Context, profileIDs []string) ([]domain.ProfileVariant, error)
	// GetVariant loads a catalog variant together with its product's store,
	// title and images.
	GetVariant(ctx context.Context, variantID string) (*domain.ProductVariant, error)
	Create(ctx context.Context, in CreateInput) (*domain.ProfileVariant, error)
	Delete(ctx context.Context, id string) error
}
