package handler

import (
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/labstack/echo/v4"
)

type BrandHandler struct {
	Handler
	brands *service.BrandService
}

func NewBrandHandler(s *server.Server, brands *service.BrandService) *BrandHandler {
	return &BrandHandler{
		Handler: NewHandler(s),
		brands:  brands,
	}
}

func (h *BrandHandler) List(c echo.Context, q *model.ListBrandsQuery) (*model.PaginatedResponse[model.Brand], error) {
	return h.brands.List(c.Request().Context(), q)
}

func (h *BrandHandler) Get(c echo.Context, p *model.IDPayload) (*model.Brand, error) {
	return h.brands.Get(c.Request().Context(), p.UUID())
}

func (h *BrandHandler) ListCars(c echo.Context, q *model.ListBrandCarsQuery) (*model.PaginatedResponse[model.Car], error) {
	return h.brands.ListCars(c.Request().Context(), q)
}

func (h *BrandHandler) Create(c echo.Context, p *model.CreateBrandPayload) (*model.Brand, error) {
	return h.brands.Create(c.Request().Context(), p)
}

func (h *BrandHandler) Update(c echo.Context, p *model.UpdateBrandPayload) (*model.Brand, error) {
	return h.brands.Update(c.Request().Context(), p)
}

func (h *BrandHandler) Delete(c echo.Context, p *model.IDPayload) error {
	return h.brands.Delete(c.Request().Context(), p.UUID())
}
