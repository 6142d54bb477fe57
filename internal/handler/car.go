package handler

import (
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/labstack/echo/v4"
)

type CarHandler struct {
	Handler
	cars *service.CarService
}

func NewCarHandler(s *server.Server, cars *service.CarService) *CarHandler {
	return &CarHandler{
		Handler: NewHandler(s),
		cars:    cars,
	}
}

func (h *CarHandler) List(c echo.Context, q *model.ListCarsQuery) (*model.PaginatedResponse[model.Car], error) {
	return h.cars.List(c.Request().Context(), q)
}

// Compare returns the requested cars side by side, in request order.
func (h *CarHandler) Compare(c echo.Context, q *model.CompareCarsQuery) ([]model.Car, error) {
	return h.cars.Compare(c.Request().Context(), q.ParsedIDs())
}

func (h *CarHandler) Get(c echo.Context, p *model.IDPayload) (*model.Car, error) {
	return h.cars.Get(c.Request().Context(), p.UUID())
}

func (h *CarHandler) Create(c echo.Context, p *model.CreateCarPayload) (*model.Car, error) {
	return h.cars.Create(c.Request().Context(), p)
}

func (h *CarHandler) Update(c echo.Context, p *model.UpdateCarPayload) (*model.Car, error) {
	return h.cars.Update(c.Request().Context(), p)
}

func (h *CarHandler) Delete(c echo.Context, p *model.IDPayload) error {
	return h.cars.Delete(c.Request().Context(), p.UUID())
}
