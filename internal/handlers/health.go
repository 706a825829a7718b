package handlers

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/mailgate/internal"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "email-service"

// HealthHandler serves GET /health. It needs no auth and never fails.
type HealthHandler struct {
	now func() time.Time
}

// HealthOption configures a HealthHandler.
type HealthOption func(*HealthHandler)

// WithClock replaces the time source.
func WithClock(now func() time.Time) HealthOption {
	return func(h *HealthHandler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements internal.Handler.
func (h *HealthHandler) Routes(r internal.Router) {
	r.GET("/health", h.health)
}

func (h *HealthHandler) health(c internal.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   ServiceName,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
