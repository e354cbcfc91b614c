package shippingrate

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"ziplofy-shipping/internal/domain"
	raterepo "ziplofy-shipping/internal/repository/shippingrate"
)

type Service struct {
	repo   raterepo.Repository
	stores storeReader
}

type storeReader interface {
	GetByID(ctx context.Context, id string) (*domain.Store, error)
}

func New(repo raterepo.Repository, stores storeReader) *Service {
	return &Service{repo: repo, stores: stores}
}

// CreateInput never carries a store id: the store is derived from the zone.
type CreateInput struct {
	ShippingZoneID            string
	CustomRateName            string
	Price                     *decimal.Decimal
	RateType                  string
	ShippingRate              string
	CustomDeliveryDescription *string
	ConditionalPricingEnabled bool
	ConditionalPricingBasis   *string
	MinWeight                 *decimal.Decimal
	MaxWeight                 *decimal.Decimal
	MinPrice                  *decimal.Decimal
	MaxPrice                  *decimal.Decimal
}

// UpdateInput applies every non-nil field independently.
type UpdateInput struct {
	CustomRateName            *string
	Price                     *decimal.Decimal
	RateType                  *string
	ShippingRate              *string
	CustomDeliveryDescription *string
	ConditionalPricingEnabled *bool
	ConditionalPricingBasis   *string
	MinWeight                 *decimal.Decimal
	MaxWeight                 *decimal.Decimal
	MinPrice                  *decimal.Decimal
	MaxPrice                  *decimal.Decimal
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.ShippingZoneRate, error) {
	if err := domain.ValidateID(in.ShippingZoneID, "shippingZoneId"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.CustomRateName)
	if name == "" {
		return nil, domain.Validationf("customRateName is required")
	}
	if in.Price == nil {
		return nil, domain.Validationf("price is required")
	}

	rate := domain.ShippingZoneRate{
		ShippingZoneID:            in.ShippingZoneID,
		RateType:                  domain.ParseRateType(in.RateType),
		ShippingRate:              shippingRateOrDefault(in.ShippingRate),
		CustomRateName:            name,
		CustomDeliveryDescription: in.CustomDeliveryDescription,
		Price:                     *in.Price,
		ConditionalPricingEnabled: in.ConditionalPricingEnabled,
		MinWeight:                 in.MinWeight,
		MaxWeight:                 in.MaxWeight,
		MinPrice:                  in.MinPrice,
		MaxPrice:                  in.MaxPrice,
	}
	if in.ConditionalPricingBasis != nil {
		basis, err := parseBasis(*in.ConditionalPricingBasis)
		if err != nil {
			return nil, err
		}
		rate.ConditionalPricingBasis = basis
	}
	if err := finalize(&rate); err != nil {
		return nil, err
	}

	storeID, err := s.resolveStore(ctx, in.ShippingZoneID)
	if err != nil {
		return nil, err
	}
	rate.StoreID = storeID
	return s.repo.Create(ctx, rate)
}

// resolveStore derives the owning store through zone -> profile -> store and
// checks that the store still exists.
func (s *Service) resolveStore(ctx context.Context, zoneID string) (string, error) {
	storeID, err := s.repo.ResolveZoneStore(ctx, zoneID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NotFoundf("Shipping zone not found")
		}
		return "", err
	}
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NotFoundf("Store not found for this shipping zone")
		}
		return "", err
	}
	return storeID, nil
}

// List returns the zone's rates newest first.
func (s *Service) List(ctx context.Context, zoneID string) ([]domain.ShippingZoneRate, error) {
	if err := domain.ValidateID(zoneID, "shippingZoneId"); err != nil {
		return nil, err
	}
	return s.repo.ListByZone(ctx, zoneID)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.ShippingZoneRate, error) {
	if err := domain.ValidateID(id, "shipping zone rate id"); err != nil {
		return nil, err
	}
	rate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if in.CustomRateName != nil {
		name := strings.TrimSpace(*in.CustomRateName)
		if name == "" {
			return nil, domain.Validationf("customRateName cannot be empty")
		}
		rate.CustomRateName = name
	}
	if in.RateType != nil {
		rate.RateType = domain.ParseRateType(*in.RateType)
	}
	if in.ShippingRate != nil {
		rate.ShippingRate = shippingRateOrDefault(*in.ShippingRate)
	}
	if in.CustomDeliveryDescription != nil {
		rate.CustomDeliveryDescription = in.CustomDeliveryDescription
	}
	if in.Price != nil {
		rate.Price = *in.Price
	}
	if in.ConditionalPricingEnabled != nil {
		rate.ConditionalPricingEnabled = *in.ConditionalPricingEnabled
	}
	if in.ConditionalPricingBasis != nil {
		basis, err := parseBasis(*in.ConditionalPricingBasis)
		if err != nil {
			return nil, err
		}
		rate.ConditionalPricingBasis = basis
	}
	setIfPresent(&rate.MinWeight, in.MinWeight)
	setIfPresent(&rate.MaxWeight, in.MaxWeight)
	setIfPresent(&rate.MinPrice, in.MinPrice)
	setIfPresent(&rate.MaxPrice, in.MaxPrice)

	if err := finalize(rate); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, *rate)
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := domain.ValidateID(id, "shipping zone rate id"); err != nil {
		return err
	}
	return notFound(s.repo.Delete(ctx, id))
}

// finalize enforces the basis requirement, drops the bounds that do not
// belong to the pricing state and validates the amounts.
func finalize(rate *domain.ShippingZoneRate) error {
	if rate.ConditionalPricingEnabled && rate.ConditionalPricingBasis == nil {
		return domain.Validationf("conditionalPricingBasis is required when conditional pricing is enabled")
	}
	rate.Normalize()
	return rate.Validate()
}

func parseBasis(raw string) (*domain.PricingBasis, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	b := domain.PricingBasis(strings.TrimSpace(raw))
	if !b.Valid() {
		return nil, domain.Validationf("conditionalPricingBasis must be weight or price")
	}
	return &b, nil
}

func shippingRateOrDefault(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return domain.DefaultShippingRate
	}
	return s
}

func setIfPresent(dst **decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = v
	}
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundf("Shipping zone rate not found")
	}
	return err
}
