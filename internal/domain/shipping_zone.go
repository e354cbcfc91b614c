package domain

import "time"

// ShippingZone groups countries and states under a profile. Countries is the
// flattened view of the zone's country and state entries.
type ShippingZone struct {
	ID                string        `json:"id"`
	ShippingProfileID string        `json:"shippingProfileId"`
	ZoneName          string        `json:"zoneName"`
	Countries         []ZoneCountry `json:"countries"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// ZoneCountry is one country of a zone. An empty StateIDs means the entire
// country is covered.
type ZoneCountry struct {
	CountryID           string   `json:"countryId"`
	CountryName         string   `json:"countryName"`
	CountryISO2         string   `json:"countryIso2"`
	CountryFlag         string   `json:"countryFlag"`
	SelectedStatesCount int      `json:"selectedStatesCount"`
	TotalStatesCount    int      `json:"totalStatesCount"`
	StateIDs            []string `json:"stateIds"`
}

// ZoneCountryInput is the requested scoping for one country.
type ZoneCountryInput struct {
	CountryID string   `json:"countryId"`
	StateIDs  []string `json:"stateIds,omitempty"`
}

// ZoneDeleteResult counts the rows removed with a zone.
type ZoneDeleteResult struct {
	DeletedCountries int64 `json:"deletedCountries"`
	DeletedStates    int64 `json:"deletedStates"`
	DeletedRates     int64 `json:"deletedRates"`
}

// Reservations records which countries and states sibling zones already claim.
type Reservations struct {
	entire  map[string]string // countryID -> zone name
	partial map[string]string // countryID -> zone name
	states  map[string]string // stateID -> zone name
}

// Reserve collects the claims of zones, skipping the zone with excludeID.
func Reserve(zones []ShippingZone, excludeID string) Reservations {
	r := Reservations{
		entire:  make(map[string]string),
		partial: make(map[string]string),
		states:  make(map[string]string),
	}
	for _, z := range zones {
		if z.ID == excludeID {
			continue
		}
		for _, c := range z.Countries {
			if len(c.StateIDs) == 0 {
				r.entire[c.CountryID] = z.ZoneName
				continue
			}
			r.partial[c.CountryID] = z.ZoneName
			for _, s := range c.StateIDs {
				r.states[s] = z.ZoneName
			}
		}
	}
	return r
}

// Overlap reports the first requested country or state already claimed by
// another zone. A whole-country claim reserves every state of that country.
func (r Reservations) Overlap(in []ZoneCountryInput) (zoneName string, countryID string, stateID string, found bool) {
	for _, c := range in {
		if name, ok := r.entire[c.CountryID]; ok {
			return name, c.CountryID, "", true
		}
		if len(c.StateIDs) == 0 {
			if name, ok := r.partial[c.CountryID]; ok {
				return name, c.CountryID, "", true
			}
			continue
		}
		for _, s := range c.StateIDs {
			if name, ok := r.states[s]; ok {
				return name, c.CountryID, s, true
			}
		}
	}
	return "", "", "", false
}
