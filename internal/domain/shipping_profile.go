package domain

import (
	"encoding/json"
	"time"
)

// ShippingProfile is a named shipping configuration owned by a store.
type ShippingProfile struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId"`
	ProfileName string    `json:"profileName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ShippingProfileDetail is a profile with its related rows populated.
type ShippingProfileDetail struct {
	ShippingProfile
	ProductVariants  []ProductVariant  `json:"productVariantIds"`
	LocationSettings []LocationSetting `json:"locationSettings"`
	ShippingZoneIDs  []string          `json:"shippingZoneIds"`
}

// RateGenerationMode says whether a location creates new rates under a
// profile or is removed from it.
type RateGenerationMode string

const (
	RateModeCreateNew RateGenerationMode = "create_new"
	RateModeRemove    RateGenerationMode = "remove"
)

// DefaultRateMode is assigned to every location when a profile is created.
const DefaultRateMode = RateModeCreateNew

func (m RateGenerationMode) Valid() bool {
	return m == RateModeCreateNew || m == RateModeRemove
}

// CreateNewRates and RemoveRates expose the mode as the flag pair clients use.
func (m RateGenerationMode) CreateNewRates() bool { return m == RateModeCreateNew }
func (m RateGenerationMode) RemoveRates() bool    { return m == RateModeRemove }

// RateModeFromFlags maps the flag pair to a mode. Exactly one flag must be set.
func RateModeFromFlags(createNewRates, removeRates bool) (RateGenerationMode, bool) {
	switch {
	case createNewRates && !removeRates:
		return RateModeCreateNew, true
	case removeRates && !createNewRates:
		return RateModeRemove, true
	default:
		return "", false
	}
}

// LocationSetting is the per (profile, location) rate generation setting.
// Location is nil when the location no longer exists.
type LocationSetting struct {
	ID                string             `json:"id"`
	ShippingProfileID string             `json:"shippingProfileId"`
	LocationID        string             `json:"locationId"`
	StoreID           string             `json:"storeId"`
	Mode              RateGenerationMode `json:"mode"`
	Location          *Location          `json:"location"`
}

// MarshalJSON adds the createNewRates/removeRates flags derived from Mode.
func (s LocationSetting) MarshalJSON() ([]byte, error) {
	type plain LocationSetting
	return json.Marshal(struct {
		plain
		CreateNewRates bool `json:"createNewRates"`
		RemoveRates    bool `json:"removeRates"`
	}{plain(s), s.Mode.CreateNewRates(), s.Mode.RemoveRates()})
}

// ProfileVariant is a product variant attached to a shipping profile.
type ProfileVariant struct {
	ID                string          `json:"id"`
	ShippingProfileID string          `json:"shippingProfileId"`
	ProductVariantID  string          `json:"-"`
	StoreID           string          `json:"storeId"`
	ProductVariant    *ProductVariant `json:"productVariantId"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ProfileDeleteResult counts the rows removed by a profile cascade.
type ProfileDeleteResult struct {
	DeletedZones            int64 `json:"deletedZones"`
	DeletedCountryEntries   int64 `json:"deletedCountryEntries"`
	DeletedStateEntries     int64 `json:"deletedStateEntries"`
	DeletedRates            int64 `json:"deletedRates"`
	DeletedLocationSettings int64 `json:"deletedLocationSettings"`
	DeletedProductVariants  int64 `json:"deletedProductVariants"`
}
