package handler

import (
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// Handlers groups every HTTP handler for router setup.
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Brand   *BrandHandler
	Car     *CarHandler
	Review  *ReviewHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Metrics *MetricsHandler
}

func NewHandlers(s *server.Server, services *service.Services, gatherer prometheus.Gatherer) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(s, services.Auth),
		User:    NewUserHandler(s, services.User, services.Review),
		Brand:   NewBrandHandler(s, services.Brand),
		Car:     NewCarHandler(s, services.Car),
		Review:  NewReviewHandler(s, services.Review),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Metrics: NewMetricsHandler(s, gatherer),
	}
}
