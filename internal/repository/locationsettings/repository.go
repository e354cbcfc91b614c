package locationsettings

import (
	"context"

	"ziplofy-shipping/internal/domain"
)

// Repository reads and updates per-location rate generation settings. Rows
// are only created together with their profile.
type Repository interface {
	// ListByProfiles returns the settings of every given profile, each with its
	// location populated when it still exists.
	ListByProfiles(ctx context.Context, profileIDs []string) ([]domain.LocationSetting, error)
	UpdateMode(ctx context.Context, profileID, locationID string, mode domain.RateGenerationMode) (*domain.LocationSetting, error)
}
