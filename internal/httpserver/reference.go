package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ziplofy-shipping/internal/service/store"
)

type geoHandler struct {
	svc GeoService
}

func (h *geoHandler) countries(c *gin.Context) error {
	countries, err := h.svc.ListCountries(c.Request.Context())
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, countries, "")
	return nil
}

func (h *geoHandler) states(c *gin.Context) error {
	states, err := h.svc.ListStates(c.Request.Context(), c.Param("countryId"))
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, states, "")
	return nil
}

type storeHandler struct {
	svc StoreService
}

func (h *storeHandler) listLocations(c *gin.Context) error {
	locations, err := h.svc.ListLocations(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, locations, "")
	return nil
}

func (h *storeHandler) createLocation(c *gin.Context) error {
	var req store.CreateLocationInput
	if err := bind(c, &req); err != nil {
		return err
	}
	loc, err := h.svc.CreateLocation(c.Request.Context(), c.Param("storeId"), req)
	if err != nil {
		return err
	}
	ok(c, http.StatusCreated, loc, "Location created successfully")
	return nil
}

func (h *storeHandler) deleteLocation(c *gin.Context) error {
	if err := h.svc.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		return err
	}
	ok(c, http.StatusOK, nil, "Location deleted successfully")
	return nil
}
