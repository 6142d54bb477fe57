package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/carcatalog/internal/model"
)

const reviewsTable = "reviews"

var reviewSelectColumns = []string{
	"r.id", "r.created_at", "r.updated_at", "r.car_id", "r.user_id", "u.username", "r.rating", "r.comment",
}

const reviewsFrom = "reviews r JOIN users u ON u.id = r.user_id"

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func selectReviews() sq.SelectBuilder {
	return psql.Select(reviewSelectColumns...).From(reviewsFrom)
}

func (r *ReviewRepository) Create(ctx context.Context, userID uuid.UUID, p *model.CreateReviewPayload) (*model.Review, error) {
	query, args, err := psql.Insert(reviewsTable).
		Columns("car_id", "user_id", "rating", "comment").
		Values(p.CarID, userID.String(), p.Rating, p.Comment).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, errors.Wrap(err, "creating review")
	}
	return r.GetByID(ctx, id)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return collectOne[model.Review](ctx, r.pool, reviewsTable, selectReviews().Where(sq.Eq{"r.id": id.String()}))
}

func (r *ReviewRepository) list(ctx context.Context, where sq.Eq, p model.Pagination) (*model.PaginatedResponse[model.Review], error) {
	p.Normalize()

	total, err := count(ctx, r.pool, psql.Select("COUNT(*)").From(reviewsFrom).Where(where))
	if err != nil {
		return nil, err
	}

	stmt := selectReviews().
		Where(where).
		OrderBy("r.created_at DESC", "r.id").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	reviews, err := collectMany[model.Review](ctx, r.pool, reviewsTable, stmt)
	if err != nil {
		return nil, err
	}

	resp := model.NewPaginatedResponse(reviews, p.Page, p.Limit, total)
	return &resp, nil
}

func (r *ReviewRepository) ListByCar(ctx context.Context, carID uuid.UUID, p model.Pagination) (*model.PaginatedResponse[model.Review], error) {
	return r.list(ctx, sq.Eq{"r.car_id": carID.String()}, p)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID uuid.UUID, p model.Pagination) (*model.PaginatedResponse[model.Review], error) {
	return r.list(ctx, sq.Eq{"r.user_id": userID.String()}, p)
}

func (r *ReviewRepository) Update(ctx context.Context, p *model.UpdateReviewPayload) (*model.Review, error) {
	set := map[string]any{}
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}
	if p.Comment != nil {
		set["comment"] = *p.Comment
	}
	if len(set) > 0 {
		stmt := psql.Update(reviewsTable).SetMap(set).Where(sq.Eq{"id": p.ID})
		if err := exec(ctx, r.pool, reviewsTable, stmt); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, p.UUID())
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return exec(ctx, r.pool, reviewsTable, psql.Delete(reviewsTable).Where(sq.Eq{"id": id.String()}))
}

// RatingSummary averages the ratings of a car. A car without reviews
// gets a zero summary.
func (r *ReviewRepository) RatingSummary(ctx context.Context, carID uuid.UUID) (*model.RatingSummary, error) {
	stmt := psql.Select("COALESCE(AVG(rating), 0)::float8 AS average", "COUNT(*)::int AS count").
		From(reviewsTable).
		Where(sq.Eq{"car_id": carID.String()})

	return collectOne[model.RatingSummary](ctx, r.pool, reviewsTable, stmt)
}
