package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/carcatalog/internal/errs"
	"github.com/deppfellow/carcatalog/internal/model"
)

type ReviewService struct {
	reviews ReviewRepository
	cars    *CarService
	cache   *Cache
}

func NewReviewService(reviews ReviewRepository, cars *CarService, cache *Cache) *ReviewService {
	return &ReviewService{reviews: reviews, cars: cars, cache: cache}
}

// Create adds the actor's review of a car. A second review of the same
// car by the same user is a 409, enforced by unique_reviews_car_user.
func (s *ReviewService) Create(ctx context.Context, actor Actor, p *model.CreateReviewPayload) (*model.Review, error) {
	carID := p.CarUUID()
	if err := s.cars.ensureExists(ctx, carID); err != nil {
		return nil, err
	}

	review, err := s.reviews.Create(ctx, actor.ID, p)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errs.NewConflictError("You have already reviewed this car", true, errs.Ptr("REVIEW_ALREADY_EXISTS"))
		}
		return nil, err
	}

	s.cache.Delete(ctx, carKey(carID))
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

func (s *ReviewService) ListByCar(ctx context.Context, q *model.ListReviewsQuery) (*model.PaginatedResponse[model.Review], error) {
	carID := q.UUID()
	if err := s.cars.ensureExists(ctx, carID); err != nil {
		return nil, err
	}
	return s.reviews.ListByCar(ctx, carID, q.Pagination)
}

func (s *ReviewService) ListByUser(ctx context.Context, q *model.ListReviewsQuery) (*model.PaginatedResponse[model.Review], error) {
	return s.reviews.ListByUser(ctx, q.UUID(), q.Pagination)
}

// authorize loads the review and checks that actor wrote it or is an admin.
func (s *ReviewService) authorize(ctx context.Context, actor Actor, id uuid.UUID) (*model.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(review.UserID) {
		return nil, errs.NewForbiddenError("You can only modify your own reviews", true)
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, actor Actor, p *model.UpdateReviewPayload) (*model.Review, error) {
	existing, err := s.authorize(ctx, actor, p.UUID())
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, carKey(existing.CarID))
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, carKey(existing.CarID))
	return nil
}
