package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/service/shippingrate"
)

type rateHandler struct {
	svc RateService
}

// rateRequest accepts amounts as JSON numbers or numeric strings.
type rateRequest struct {
	ShippingZoneID            string           `json:"shippingZoneId"`
	CustomRateName            *string          `json:"customRateName"`
	Price                     *decimal.Decimal `json:"price"`
	RateType                  *string          `json:"rateType"`
	ShippingRate              *string          `json:"shippingRate"`
	CustomDeliveryDescription *string          `json:"customDeliveryDescription"`
	ConditionalPricingEnabled *bool            `json:"conditionalPricingEnabled"`
	ConditionalPricingBasis   *string          `json:"conditionalPricingBasis"`
	MinWeight                 *decimal.Decimal `json:"minWeight"`
	MaxWeight                 *decimal.Decimal `json:"maxWeight"`
	MinPrice                  *decimal.Decimal `json:"minPrice"`
	MaxPrice                  *decimal.Decimal `json:"maxPrice"`
}

func (r rateRequest) toCreate() shippingrate.CreateInput {
	return shippingrate.CreateInput{
		ShippingZoneID:            r.ShippingZoneID,
		CustomRateName:            deref(r.CustomRateName),
		Price:                     r.Price,
		RateType:                  deref(r.RateType),
		ShippingRate:              deref(r.ShippingRate),
		CustomDeliveryDescription: r.CustomDeliveryDescription,
		ConditionalPricingEnabled: r.ConditionalPricingEnabled != nil && *r.ConditionalPricingEnabled,
		ConditionalPricingBasis:   r.ConditionalPricingBasis,
		MinWeight:                 r.MinWeight,
		MaxWeight:                 r.MaxWeight,
		MinPrice:                  r.MinPrice,
		MaxPrice:                  r.MaxPrice,
	}
}

func (r rateRequest) toUpdate() shippingrate.UpdateInput {
	return shippingrate.UpdateInput{
		CustomRateName:            r.CustomRateName,
		Price:                     r.Price,
		RateType:                  r.RateType,
		ShippingRate:              r.ShippingRate,
		CustomDeliveryDescription: r.CustomDeliveryDescription,
		ConditionalPricingEnabled: r.ConditionalPricingEnabled,
		ConditionalPricingBasis:   r.ConditionalPricingBasis,
		MinWeight:                 r.MinWeight,
		MaxWeight:                 r.MaxWeight,
		MinPrice:                  r.MinPrice,
		MaxPrice:                  r.MaxPrice,
	}
}

// rateResponse renders amounts as JSON numbers.
type rateResponse struct {
	ID                        string               `json:"id"`
	ShippingZoneID            string               `json:"shippingZoneId"`
	StoreID                   string               `json:"storeId"`
	RateType                  domain.RateType      `json:"rateType"`
	ShippingRate              string               `json:"shippingRate"`
	CustomRateName            string               `json:"customRateName"`
	CustomDeliveryDescription *string              `json:"customDeliveryDescription,omitempty"`
	Price                     float64              `json:"price"`
	ConditionalPricingEnabled bool                 `json:"conditionalPricingEnabled"`
	ConditionalPricingBasis   *domain.PricingBasis `json:"conditionalPricingBasis"`
	MinWeight                 *float64             `json:"minWeight,omitempty"`
	MaxWeight                 *float64             `json:"maxWeight,omitempty"`
	MinPrice                  *float64             `json:"minPrice,omitempty"`
	MaxPrice                  *float64             `json:"maxPrice,omitempty"`
	CreatedAt                 time.Time            `json:"createdAt"`
	UpdatedAt                 time.Time            `json:"updatedAt"`
}

func toRateResponse(r *domain.ShippingZoneRate) rateResponse {
	return rateResponse{
		ID:                        r.ID,
		ShippingZoneID:            r.ShippingZoneID,
		StoreID:                   r.StoreID,
		RateType:                  r.RateType,
		ShippingRate:              r.ShippingRate,
		CustomRateName:            r.CustomRateName,
		CustomDeliveryDescription: r.CustomDeliveryDescription,
		Price:                     r.Price.InexactFloat64(),
		ConditionalPricingEnabled: r.ConditionalPricingEnabled,
		ConditionalPricingBasis:   r.ConditionalPricingBasis,
		MinWeight:                 toFloat(r.MinWeight),
		MaxWeight:                 toFloat(r.MaxWeight),
		MinPrice:                  toFloat(r.MinPrice),
		MaxPrice:                  toFloat(r.MaxPrice),
		CreatedAt:                 r.CreatedAt,
		UpdatedAt:                 r.UpdatedAt,
	}
}

func toFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *rateHandler) create(c *gin.Context) error {
	var req rateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rate, err := h.svc.Create(c.Request.Context(), req.toCreate())
	if err != nil {
		return err
	}
	ok(c, http.StatusCreated, toRateResponse(rate), "Shipping zone rate created successfully")
	return nil
}

func (h *rateHandler) list(c *gin.Context) error {
	rates, err := h.svc.List(c.Request.Context(), c.Param("shippingZoneId"))
	if err != nil {
		return err
	}
	out := make([]rateResponse, 0, len(rates))
	for i := range rates {
		out = append(out, toRateResponse(&rates[i]))
	}
	ok(c, http.StatusOK, out, "")
	return nil
}

func (h *rateHandler) update(c *gin.Context) error {
	var req rateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rate, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, toRateResponse(rate), "Shipping zone rate updated successfully")
	return nil
}

func (h *rateHandler) delete(c *gin.Context) error {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		return err
	}
	ok(c, http.StatusOK, nil, "Shipping zone rate deleted successfully")
	return nil
}
