package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/logger"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

func ok(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

func okWithMeta(c *gin.Context, data any, message string, meta any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Message: message, Meta: meta})
}

// wrap adapts an error-returning handler and renders any error as the
// failure envelope.
func wrap(h func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			fail(c, err)
		}
	}
}

func fail(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromGin(c).Error("request failed", zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}

func statusFor(err error) (int, string) {
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation:
			return http.StatusBadRequest, de.Message
		case domain.KindNotFound:
			return http.StatusNotFound, de.Message
		case domain.KindConflict:
			return http.StatusConflict, de.Message
		case domain.KindForbidden:
			return http.StatusForbidden, de.Message
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, "Resource already exists"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// bind decodes the JSON body into dst. Decoding failures are client errors.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domain.Validationf("Invalid request body: %v", err)
	}
	return nil
}
