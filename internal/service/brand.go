package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/deppfellow/carcatalog/internal/errs"
	"github.com/deppfellow/carcatalog/internal/model"
)

type BrandService struct {
	brands BrandRepository
	cars   CarRepository
	cache  *Cache
}

func NewBrandService(brands BrandRepository, cars CarRepository, cache *Cache) *BrandService {
	return &BrandService{brands: brands, cars: cars, cache: cache}
}

const brandListPrefix = "brands:list:"

// brandListKey encodes the normalized query. Values are escaped so free
// text cannot make two queries share a key.
func brandListKey(q *model.ListBrandsQuery) string {
	v := url.Values{
		"page":    {strconv.Itoa(q.Page)},
		"limit":   {strconv.Itoa(q.Limit)},
		"search":  {q.Search},
		"country": {q.Country},
		"sort":    {q.Sort},
		"order":   {q.Order},
	}
	return brandListPrefix + v.Encode()
}

func brandNameTaken() error {
	return errs.NewConflictError("A Brand with this Name already exists", true, errs.Ptr("BRAND_ALREADY_EXISTS"))
}

// ensureNameFree returns 409 when another brand already uses name.
func (s *BrandService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.brands.GetByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return brandNameTaken()
	}
	return nil
}

func (s *BrandService) Create(ctx context.Context, p *model.CreateBrandPayload) (*model.Brand, error) {
	if err := s.ensureNameFree(ctx, p.Name, uuid.Nil); err != nil {
		return nil, err
	}

	brand, err := s.brands.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.cache.DeletePrefix(ctx, brandListPrefix)
	return brand, nil
}

func (s *BrandService) Get(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	return s.brands.GetByID(ctx, id)
}

func (s *BrandService) List(ctx context.Context, q *model.ListBrandsQuery) (*model.PaginatedResponse[model.Brand], error) {
	q.Normalize()
	key := brandListKey(q)

	var cached model.PaginatedResponse[model.Brand]
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	resp, err := s.brands.List(ctx, q)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, resp)
	return resp, nil
}

// ListCars lists the cars of one brand, 404 when the brand is unknown.
func (s *BrandService) ListCars(ctx context.Context, q *model.ListBrandCarsQuery) (*model.PaginatedResponse[model.Car], error) {
	id := q.UUID()
	exists, err := s.brands.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, brandNotFound()
	}

	return s.cars.List(ctx, &model.ListCarsQuery{
		Pagination: q.Pagination,
		BrandID:    id.String(),
	})
}

func (s *BrandService) Update(ctx context.Context, p *model.UpdateBrandPayload) (*model.Brand, error) {
	if p.Name != nil {
		if err := s.ensureNameFree(ctx, *p.Name, p.UUID()); err != nil {
			return nil, err
		}
	}

	brand, err := s.brands.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return brand, nil
}

// Delete removes the brand together with its cars and their reviews.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.brands.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// invalidate drops the brand lists and every cached car, since cars
// embed the brand name.
func (s *BrandService) invalidate(ctx context.Context) {
	s.cache.DeletePrefix(ctx, brandListPrefix)
	s.cache.DeletePrefix(ctx, carKeyPrefix)
}

func brandNotFound() error {
	return errs.NewNotFoundError("Brand not found", true, errs.Ptr("BRAND_NOT_FOUND"))
}
