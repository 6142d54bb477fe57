package handler

import (
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users   *service.UserService
	reviews *service.ReviewService
}

func NewUserHandler(s *server.Server, users *service.UserService, reviews *service.ReviewService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
		reviews: reviews,
	}
}

func (h *UserHandler) List(c echo.Context, q *model.ListUsersQuery) (*model.PaginatedResponse[model.User], error) {
	actor, err := actorFrom(c)
	if err != nil {
		return nil, err
	}
	return h.users.List(c.Request().Context(), actor, q)
}

func (h *UserHandler) Get(c echo.Context, p *model.IDPayload) (*model.User, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return nil, err
	}
	return h.users.Get(c.Request().Context(), actor, p.UUID())
}

func (h *UserHandler) Update(c echo.Context, p *model.UpdateUserPayload) (*model.User, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return nil, err
	}
	return h.users.Update(c.Request().Context(), actor, p)
}

func (h *UserHandler) Delete(c echo.Context, p *model.IDPayload) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	return h.users.Delete(c.Request().Context(), actor, p.UUID())
}

// Reviews lists the reviews written by a user. Public.
func (h *UserHandler) Reviews(c echo.Context, q *model.ListReviewsQuery) (*model.PaginatedResponse[model.Review], error) {
	return h.reviews.ListByUser(c.Request().Context(), q)
}
