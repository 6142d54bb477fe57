package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/carcatalog/internal/middleware"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	checkDatabase = "database"
	checkRedis    = "redis"
)

type probe func(ctx context.Context) error

// HealthHandler serves /status for load balancers and uptime monitors.
// A failing database makes the service unhealthy (503); a failing redis
// only degrades it, since the cache and jobs tolerate its absence.
type HealthHandler struct {
	Handler
	probes map[string]probe
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	probes := make(map[string]probe)
	obs := s.Config.Observability

	if obs.HealthCheckEnabled(checkDatabase) && s.DB != nil {
		probes[checkDatabase] = s.DB.Ping
	}
	if obs.HealthCheckEnabled(checkRedis) && s.Redis != nil {
		probes[checkRedis] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}

	return newHealthHandler(s, probes)
}

func newHealthHandler(s *server.Server, probes map[string]probe) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		probes:  probes,
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(h.probes)),
	}

	status := http.StatusOK
	timeout := h.server.Config.Observability.HealthChecks.Timeout

	for name, run := range h.probes {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		probeStart := time.Now()
		err := run(ctx)
		cancel()

		result := checkResult{Status: "healthy", ResponseTime: time.Since(probeStart).String()}
		if err != nil {
			result.Status = "unhealthy"
			result.Error = err.Error()

			logger.Error().Err(err).Str("check", name).Msg("health check failed")
			h.recordFailure(name, err, time.Since(probeStart))

			if name == checkDatabase {
				response.Status = "unhealthy"
				status = http.StatusServiceUnavailable
			} else if response.Status == "healthy" {
				response.Status = "degraded"
			}
		}
		response.Checks[name] = result
	}

	logger.Debug().
		Str("status", response.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check finished")

	return c.JSON(status, response)
}

func (h *HealthHandler) recordFailure(check string, err error, elapsed time.Duration) {
	if nrApp := h.server.LoggerService.GetApplication(); nrApp != nil {
		nrApp.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       check,
			"operation":        "health_check",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}
}
