package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RateType string

const (
	RateTypeFlat    RateType = "flat"
	RateTypeCarrier RateType = "carrier"
)

// ParseRateType returns carrier only for an explicit "carrier"; anything else
// is a flat rate.
func ParseRateType(s string) RateType {
	if s == string(RateTypeCarrier) {
		return RateTypeCarrier
	}
	return RateTypeFlat
}

// DefaultShippingRate is stored when the client does not name a rate source.
const DefaultShippingRate = "custom"

type PricingBasis string

const (
	BasisWeight PricingBasis = "weight"
	BasisPrice  PricingBasis = "price"
)

func (b PricingBasis) Valid() bool {
	return b == BasisWeight || b == BasisPrice
}

// PricingState is the conditional pricing state of a rate.
type PricingState int

const (
	Unconditional PricingState = iota
	ConditionalByWeight
	ConditionalByPrice
)

func (s PricingState) String() string {
	switch s {
	case ConditionalByWeight:
		return "conditional_by_weight"
	case ConditionalByPrice:
		return "conditional_by_price"
	default:
		return "unconditional"
	}
}

// ShippingZoneRate is a priced shipping option of a zone. StoreID is always
// derived from the zone's profile.
type ShippingZoneRate struct {
	ID                        string           `json:"id"`
	ShippingZoneID            string           `json:"shippingZoneId"`
	StoreID                   string           `json:"storeId"`
	RateType                  RateType         `json:"rateType"`
	ShippingRate              string           `json:"shippingRate"`
	CustomRateName            string           `json:"customRateName"`
	CustomDeliveryDescription *string          `json:"customDeliveryDescription,omitempty"`
	Price                     decimal.Decimal  `json:"price"`
	ConditionalPricingEnabled bool             `json:"conditionalPricingEnabled"`
	ConditionalPricingBasis   *PricingBasis    `json:"conditionalPricingBasis,omitempty"`
	MinWeight                 *decimal.Decimal `json:"minWeight,omitempty"`
	MaxWeight                 *decimal.Decimal `json:"maxWeight,omitempty"`
	MinPrice                  *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice                  *decimal.Decimal `json:"maxPrice,omitempty"`
	CreatedAt                 time.Time        `json:"createdAt"`
	UpdatedAt                 time.Time        `json:"updatedAt"`
}

// PricingState derives the state from the enabled flag and basis.
func (r *ShippingZoneRate) PricingState() PricingState {
	if !r.ConditionalPricingEnabled || r.ConditionalPricingBasis == nil {
		return Unconditional
	}
	switch *r.ConditionalPricingBasis {
	case BasisWeight:
		return ConditionalByWeight
	case BasisPrice:
		return ConditionalByPrice
	default:
		return Unconditional
	}
}

// Normalize clears every bound that does not belong to the current pricing
// state.
func (r *ShippingZoneRate) Normalize() {
	switch r.PricingState() {
	case ConditionalByWeight:
		r.MinPrice, r.MaxPrice = nil, nil
	case ConditionalByPrice:
		r.MinWeight, r.MaxWeight = nil, nil
	default:
		r.MinWeight, r.MaxWeight = nil, nil
		r.MinPrice, r.MaxPrice = nil, nil
	}
}

// Storage limits of the amount columns: numeric(14,2) for money and
// numeric(14,3) for weights.
const (
	MoneyScale  = 2
	WeightScale = 3
)

var (
	moneyLimit  = decimal.New(1, 14-MoneyScale)
	weightLimit = decimal.New(1, 14-WeightScale)
)

// checkAmount rejects values the column would round or overflow.
func checkAmount(name string, v decimal.Decimal, scale int32, limit decimal.Decimal) error {
	if !v.Equal(v.Round(scale)) {
		return Validationf("%s must have at most %d decimal places", name, scale)
	}
	if v.GreaterThanOrEqual(limit) {
		return Validationf("%s must be less than %s", name, limit.String())
	}
	return nil
}

// Validate checks the amounts of a normalized rate.
func (r *ShippingZoneRate) Validate() error {
	if r.Price.IsNegative() {
		return Validationf("price must be a number greater than or equal to 0")
	}
	if err := checkAmount("price", r.Price, MoneyScale, moneyLimit); err != nil {
		return err
	}
	bounds := []struct {
		name  string
		v     *decimal.Decimal
		scale int32
		limit decimal.Decimal
	}{
		{"minWeight", r.MinWeight, WeightScale, weightLimit},
		{"maxWeight", r.MaxWeight, WeightScale, weightLimit},
		{"minPrice", r.MinPrice, MoneyScale, moneyLimit},
		{"maxPrice", r.MaxPrice, MoneyScale, moneyLimit},
	}
	for _, b := range bounds {
		if b.v == nil {
			continue
		}
		if b.v.IsNegative() {
			return Validationf("%s must be greater than or equal to 0", b.name)
		}
		if err := checkAmount(b.name, *b.v, b.scale, b.limit); err != nil {
			return err
		}
	}
	if r.MinWeight != nil && r.MaxWeight != nil && r.MinWeight.GreaterThan(*r.MaxWeight) {
		return Validationf("minWeight cannot be greater than maxWeight")
	}
	if r.MinPrice != nil && r.MaxPrice != nil && r.MinPrice.GreaterThan(*r.MaxPrice) {
		return Validationf("minPrice cannot be greater than maxPrice")
	}
	return nil
}
