package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ziplofy-shipping/internal/service/shippingzone"
)

type zoneHandler struct {
	svc ZoneService
}

func (h *zoneHandler) create(c *gin.Context) error {
	var req shippingzone.CreateInput
	if err := bind(c, &req); err != nil {
		return err
	}
	z, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		return err
	}
	ok(c, http.StatusCreated, z, "Shipping zone created successfully")
	return nil
}

func (h *zoneHandler) list(c *gin.Context) error {
	zones, err := h.svc.List(c.Request.Context(), c.Param("shippingProfileId"))
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, zones, "")
	return nil
}

func (h *zoneHandler) update(c *gin.Context) error {
	var req shippingzone.UpdateInput
	if err := bind(c, &req); err != nil {
		return err
	}
	z, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	ok(c, http.StatusOK, z, "Shipping zone updated successfully")
	return nil
}

func (h *zoneHandler) delete(c *gin.Context) error {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	okWithMeta(c, nil, "Shipping zone deleted successfully", res)
	return nil
}
