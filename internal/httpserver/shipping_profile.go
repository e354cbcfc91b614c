package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ziplofy-shipping/internal/service/locationsettings"
)

type profileHandler struct {
	svc ProfileService
}

type profileRequest struct {
	StoreID     string `json:"storeId"`
	ProfileName string `json:"profileName"`
}

func (h *profileHandler) create(c *gin.Context) error {
	var req profileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Create(c.Request.Context(), req.StoreID, req.ProfileName)
	if err != nil {
		return err
	}
	ok(c, http.StatusCreated, p, "Shipping profile created successfully")
	return nil
}

func (h *profileHandler) list(c *gin.Context) error {
	profiles, err := h.svc.List(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, profiles, "")
	return nil
}

func (h *profileHandler) update(c *gin.Context) error {
	var req profileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.ProfileName)
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, p, "Shipping profile updated successfully")
	return nil
}

func (h *profileHandler) delete(c *gin.Context) error {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	okWithMeta(c, nil, "Shipping profile deleted successfully", res)
	return nil
}

type locationSettingsHandler struct {
	svc LocationSettingsService
}

func (h *locationSettingsHandler) get(c *gin.Context) error {
	settings, err := h.svc.Get(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, settings, "")
	return nil
}

func (h *locationSettingsHandler) update(c *gin.Context) error {
	var req locationsettings.UpdateInput
	if err := bind(c, &req); err != nil {
		return err
	}
	s, err := h.svc.Update(c.Request.Context(), c.Param("profileId"), c.Param("locationId"), req)
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, s, "Location settings updated successfully")
	return nil
}

type profileVariantHandler struct {
	svc ProfileVariantService
}

type profileVariantRequest struct {
	ProductVariantID string `json:"productVariantId"`
}

func (h *profileVariantHandler) list(c *gin.Context) error {
	entries, err := h.svc.List(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, entries, "")
	return nil
}

func (h *profileVariantHandler) create(c *gin.Context) error {
	var req profileVariantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	entry, err := h.svc.Create(c.Request.Context(), c.Param("profileId"), req.ProductVariantID)
	if err != nil {
		return err
	}
	ok(c, http.StatusCreated, entry, "Product variant added to shipping profile")
	return nil
}

func (h *profileVariantHandler) delete(c *gin.Context) error {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		return err
	}
	ok(c, http.StatusOK, nil, "Product variant removed from shipping profile")
	return nil
}
