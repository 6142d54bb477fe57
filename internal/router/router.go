// Package router builds the echo instance: global middleware, the error
// handler, system routes and the /api/v1 route groups.
package router

import (
	"net/http"

	"github.com/deppfellow/carcatalog/internal/handler"
	"github.com/deppfellow/carcatalog/internal/middleware"
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewRouter wires services into handlers and routes. Each router owns its
// own Prometheus registry, exposed at /metrics.
func NewRouter(s *server.Server, services *service.Services) *echo.Echo {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := middleware.NewMiddlewares(s, services.Auth, registry)
	h := handler.NewHandlers(s, services, registry)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.Recover(),
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Metrics.Collect(),
		m.Global.RequestLogger(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerAuthRoutes(v1, h, m)
	registerUserRoutes(v1, h, m)
	registerBrandRoutes(v1, h, m)
	registerCarRoutes(v1, h, m)
	registerReviewRoutes(v1, h, m)

	return router
}

func registerAuthRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	auth := g.Group("/auth")
	limited := m.RateLimit.Limit("auth")

	auth.POST("/register", handler.Handle(h.Auth.Register, http.StatusCreated), limited)
	auth.POST("/login", handler.Handle(h.Auth.Login, http.StatusOK), limited)
	auth.GET("/me", handler.Handle(h.Auth.Me, http.StatusOK), m.Auth.RequireAuth)
}

func registerUserRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	users := g.Group("/users")

	users.GET("", handler.Handle(h.User.List, http.StatusOK), m.Auth.RequireAuth, m.Auth.RequireRole(model.RoleAdmin))
	users.GET("/:id", handler.Handle(h.User.Get, http.StatusOK), m.Auth.RequireAuth)
	users.PUT("/:id", handler.Handle(h.User.Update, http.StatusOK), m.Auth.RequireAuth)
	users.DELETE("/:id", handler.HandleNoContent(h.User.Delete, http.StatusNoContent), m.Auth.RequireAuth)
	users.GET("/:id/reviews", handler.Handle(h.User.Reviews, http.StatusOK))
}

func registerBrandRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	brands := g.Group("/brands")
	admin := []echo.MiddlewareFunc{m.Auth.RequireAuth, m.Auth.RequireRole(model.RoleAdmin)}

	brands.GET("", handler.Handle(h.Brand.List, http.StatusOK))
	brands.GET("/:id", handler.Handle(h.Brand.Get, http.StatusOK))
	brands.GET("/:id/cars", handler.Handle(h.Brand.ListCars, http.StatusOK))

	brands.POST("", handler.Handle(h.Brand.Create, http.StatusCreated), admin...)
	brands.PUT("/:id", handler.Handle(h.Brand.Update, http.StatusOK), admin...)
	brands.DELETE("/:id", handler.HandleNoContent(h.Brand.Delete, http.StatusNoContent), admin...)
}

func registerCarRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	cars := g.Group("/cars")
	admin := []echo.MiddlewareFunc{m.Auth.RequireAuth, m.Auth.RequireRole(model.RoleAdmin)}

	cars.GET("", handler.Handle(h.Car.List, http.StatusOK))
	cars.GET("/compare", handler.Handle(h.Car.Compare, http.StatusOK))
	cars.GET("/:id", handler.Handle(h.Car.Get, http.StatusOK))

	cars.POST("", handler.Handle(h.Car.Create, http.StatusCreated), admin...)
	cars.PUT("/:id", handler.Handle(h.Car.Update, http.StatusOK), admin...)
	cars.DELETE("/:id", handler.HandleNoContent(h.Car.Delete, http.StatusNoContent), admin...)

	cars.GET("/:id/reviews", handler.Handle(h.Review.ListByCar, http.StatusOK))
	cars.POST("/:id/reviews", handler.Handle(h.Review.Create, http.StatusCreated), m.Auth.RequireAuth)
}

func registerReviewRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	reviews := g.Group("/reviews")

	reviews.GET("/:id", handler.Handle(h.Review.Get, http.StatusOK))
	reviews.PUT("/:id", handler.Handle(h.Review.Update, http.StatusOK), m.Auth.RequireAuth)
	reviews.DELETE("/:id", handler.HandleNoContent(h.Review.Delete, http.StatusNoContent), m.Auth.RequireAuth)
}
