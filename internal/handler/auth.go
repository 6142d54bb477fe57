package handler

import (
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Register(c echo.Context, p *model.RegisterPayload) (*model.AuthResponse, error) {
	return h.auth.Register(c.Request().Context(), p)
}

func (h *AuthHandler) Login(c echo.Context, p *model.LoginPayload) (*model.AuthResponse, error) {
	return h.auth.Login(c.Request().Context(), p)
}

func (h *AuthHandler) Me(c echo.Context, _ *model.EmptyPayload) (*model.User, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return nil, err
	}
	return h.auth.Me(c.Request().Context(), actor)
}
