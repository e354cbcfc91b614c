// Package apiclient is a typed client for the shipping HTTP API.
package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"ziplofy-shipping/internal/domain"
)

const DefaultTimeout = 10 * time.Second

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("shipping api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("shipping api: status %d: %s", e.StatusCode, e.Message)
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

type Client struct {
	http *resty.Client
}

// New returns a client for baseURL. A non-positive timeout uses DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "shipctl/1.0"),
	}
}

func (c *Client) ListProfiles(ctx context.Context, storeID string) ([]domain.ShippingProfileDetail, error) {
	return get[[]domain.ShippingProfileDetail](ctx, c, "/shipping-profiles/store/"+url.PathEscape(storeID))
}

func (c *Client) ListZones(ctx context.Context, profileID string) ([]domain.ShippingZone, error) {
	return get[[]domain.ShippingZone](ctx, c, "/shipping-zones/profile/"+url.PathEscape(profileID))
}

func (c *Client) ListRates(ctx context.Context, zoneID string) ([]domain.ShippingZoneRate, error) {
	return get[[]domain.ShippingZoneRate](ctx, c, "/shipping-zone-rates/zone/"+url.PathEscape(zoneID))
}

func (c *Client) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return get[[]domain.Country](ctx, c, "/countries")
}

func (c *Client) ListStates(ctx context.Context, countryID string) ([]domain.State, error) {
	return get[[]domain.State](ctx, c, "/countries/"+url.PathEscape(countryID)+"/states")
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var (
		out  envelope[T]
		fail envelope[struct{}]
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&fail).
		Get(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.IsError() {
		var zero T
		return zero, &Error{StatusCode: resp.StatusCode(), Message: fail.Message}
	}
	return out.Data, nil
}
