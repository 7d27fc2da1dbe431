package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the root service banner and the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root handles GET / and identifies the service.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "WhatsApp Dashboard API",
		"status":  "running",
		"docs":    "/metrics",
	})
}

// Liveness handles GET /health. It only proves the process is serving.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
