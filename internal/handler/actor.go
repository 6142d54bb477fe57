package handler

import (
	"github.com/deppfellow/carcatalog/internal/errs"
	"github.com/deppfellow/carcatalog/internal/middleware"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actorFrom returns the caller set by RequireAuth.
func actorFrom(c echo.Context) (service.Actor, error) {
	id, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return service.Actor{}, errs.NewUnauthorizedError("Authentication required", false)
	}
	return service.Actor{ID: id, Role: middleware.GetUserRole(c)}, nil
}
