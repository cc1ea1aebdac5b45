package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"tripcraft/internal/logging"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler creates a health handler checking deps on readiness.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Live godoc
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /readyz [get]
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	status := http.StatusOK
	report := make(map[string]string, len(h.deps))
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			logging.FromContext(ctx).Warn("readiness_failed", "dependency", name, "error", err)
			report[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		report[name] = "ok"
	}
	return c.JSON(status, report)
}
