package handler

import (
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus registry the metrics middleware
// writes to.
type MetricsHandler struct {
	Handler
	serve echo.HandlerFunc
}

func NewMetricsHandler(s *server.Server, gatherer prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{
		Handler: NewHandler(s),
		serve:   echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
	}
}

func (h *MetricsHandler) ServeMetrics(c echo.Context) error {
	return h.serve(c)
}
