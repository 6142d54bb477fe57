package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/carcatalog/internal/errs"
	"github.com/deppfellow/carcatalog/internal/model"
)

type CarService struct {
	cars    CarRepository
	brands  BrandRepository
	reviews ReviewRepository
	cache   *Cache
}

func NewCarService(cars CarRepository, brands BrandRepository, reviews ReviewRepository, cache *Cache) *CarService {
	return &CarService{cars: cars, brands: brands, reviews: reviews, cache: cache}
}

const carKeyPrefix = "cars:"

func carKey(id uuid.UUID) string {
	return carKeyPrefix + id.String()
}

func carNotFound() error {
	return errs.NewNotFoundError("Car not found", true, errs.Ptr("CAR_NOT_FOUND"))
}

func (s *CarService) ensureBrand(ctx context.Context, id uuid.UUID) error {
	exists, err := s.brands.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return brandNotFound()
	}
	return nil
}

func (s *CarService) Create(ctx context.Context, p *model.CreateCarPayload) (*model.Car, error) {
	if err := s.ensureBrand(ctx, p.BrandID); err != nil {
		return nil, err
	}
	return s.cars.Create(ctx, p)
}

// Get returns the car with its rating summary, read through the cache.
func (s *CarService) Get(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var cached model.Car
	if s.cache.Get(ctx, carKey(id), &cached) {
		return &cached, nil
	}

	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.reviews.RatingSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	car.Rating = summary

	s.cache.Set(ctx, carKey(id), car)
	return car, nil
}

func (s *CarService) List(ctx context.Context, q *model.ListCarsQuery) (*model.PaginatedResponse[model.Car], error) {
	return s.cars.List(ctx, q)
}

// Compare fetches the requested cars in request order. Any unknown id
// fails the whole comparison with 404.
func (s *CarService) Compare(ctx context.Context, ids []uuid.UUID) ([]model.Car, error) {
	found, err := s.cars.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.Car, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	result := make([]model.Car, 0, len(ids))
	for _, id := range ids {
		car, ok := byID[id]
		if !ok {
			return nil, errs.NewNotFoundError("Car "+id.String()+" not found", true, errs.Ptr("CAR_NOT_FOUND"))
		}

		summary, err := s.reviews.RatingSummary(ctx, id)
		if err != nil {
			return nil, err
		}
		car.Rating = summary

		result = append(result, car)
	}
	return result, nil
}

func (s *CarService) Update(ctx context.Context, p *model.UpdateCarPayload) (*model.Car, error) {
	if p.BrandID != nil {
		if err := s.ensureBrand(ctx, *p.BrandID); err != nil {
			return nil, err
		}
	}

	car, err := s.cars.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, carKey(car.ID))
	return car, nil
}

// Delete removes the car together with its reviews.
func (s *CarService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, carKey(id))
	return nil
}

// ensureExists returns 404 unless the car is known.
func (s *CarService) ensureExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.cars.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return carNotFound()
		}
		return err
	}
	return nil
}
