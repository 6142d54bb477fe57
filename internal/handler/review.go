package handler

import (
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	Handler
	reviews *service.ReviewService
}

func NewReviewHandler(s *server.Server, reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		Handler: NewHandler(s),
		reviews: reviews,
	}
}

func (h *ReviewHandler) ListByCar(c echo.Context, q *model.ListReviewsQuery) (*model.PaginatedResponse[model.Review], error) {
	return h.reviews.ListByCar(c.Request().Context(), q)
}

func (h *ReviewHandler) Create(c echo.Context, p *model.CreateReviewPayload) (*model.Review, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return nil, err
	}
	return h.reviews.Create(c.Request().Context(), actor, p)
}

func (h *ReviewHandler) Get(c echo.Context, p *model.IDPayload) (*model.Review, error) {
	return h.reviews.Get(c.Request().Context(), p.UUID())
}

func (h *ReviewHandler) Update(c echo.Context, p *model.UpdateReviewPayload) (*model.Review, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return nil, err
	}
	return h.reviews.Update(c.Request().Context(), actor, p)
}

func (h *ReviewHandler) Delete(c echo.Context, p *model.IDPayload) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	return h.reviews.Delete(c.Request().Context(), actor, p.UUID())
}
