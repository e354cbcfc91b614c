package domain

import "time"

type Country struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ISO2      string    `json:"iso2"`
	Flag      string    `json:"flag,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type State struct {
	ID        string    `json:"id"`
	CountryID string    `json:"countryId"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
