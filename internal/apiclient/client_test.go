package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second)
}

func TestListRates_DecodesNumericAmounts(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shipping-zone-rates/zone/z1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"r1","customRateName":"Standard","price":9.99,"minWeight":1.5,"conditionalPricingEnabled":true,"conditionalPricingBasis":"weight"}]}`))
	})

	rates, err := c.ListRates(context.Background(), "z1")
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "9.99", rates[0].Price.String())
	require.NotNil(t, rates[0].MinWeight)
	assert.Equal(t, "1.5", rates[0].MinWeight.String())
}

func TestListStates(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/countries/c1/states", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"s1","name":"Karnataka","code":"KA"}]}`))
	})

	states, err := c.ListStates(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "KA", states[0].Code)
}

func TestErrorEnvelope(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Shipping profile not found"}`))
	})

	_, err := c.ListZones(context.Background(), "p1")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Shipping profile not found", apiErr.Message)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, 50*time.Millisecond).ListCountries(context.Background())
	require.Error(t, err)
}
