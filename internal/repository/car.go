package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/carcatalog/internal/model"
)

const carsTable = "cars"

var carColumns = []string{
	"id", "created_at", "updated_at", "brand_id", "model", "year", "price", "mileage",
	"fuel_type", "transmission", "body_type", "color", "horsepower", "description", "image_url",
}

// carSelectColumns qualifies carColumns for the brand join.
var carSelectColumns = func() []string {
	cols := make([]string, 0, len(carColumns)+1)
	for _, c := range carColumns {
		cols = append(cols, "c."+c)
	}
	return append(cols, "b.name AS brand_name")
}()

var carSorts = map[string]string{
	"price":      "c.price",
	"year":       "c.year",
	"mileage":    "c.mileage",
	"horsepower": "c.horsepower",
	"created_at": "c.created_at",
}

const carsFrom = "cars c JOIN brands b ON b.id = c.brand_id"

type CarRepository struct {
	pool *pgxpool.Pool
}

func NewCarRepository(pool *pgxpool.Pool) *CarRepository {
	return &CarRepository{pool: pool}
}

func selectCars() sq.SelectBuilder {
	return psql.Select(carSelectColumns...).From(carsFrom)
}

func (r *CarRepository) Create(ctx context.Context, p *model.CreateCarPayload) (*model.Car, error) {
	stmt := psql.Insert(carsTable).
		Columns("brand_id", "model", "year", "price", "mileage", "fuel_type", "transmission",
			"body_type", "color", "horsepower", "description", "image_url").
		Values(p.BrandID.String(), p.Model, p.Year, *p.Price, p.Mileage, p.FuelType, p.Transmission,
			p.BodyType, p.Color, p.Horsepower, p.Description, p.ImageURL).
		Suffix("RETURNING id")

	id, err := r.insertID(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CarRepository) insertID(ctx context.Context, stmt sq.Sqlizer) (uuid.UUID, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *CarRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	return collectOne[model.Car](ctx, r.pool, carsTable, selectCars().Where(sq.Eq{"c.id": id.String()}))
}

// Exists reports whether the brand already lists model for year.
func (r *CarRepository) Exists(ctx context.Context, brandID uuid.UUID, model string, year int) (bool, error) {
	n, err := count(ctx, r.pool, psql.Select("COUNT(*)").
		From(carsTable).
		Where(sq.Eq{"brand_id": brandID.String(), "year": year}).
		Where("LOWER(model) = LOWER(?)", model))
	return n > 0, err
}

// ListByIDs returns the cars found among ids, in no particular order.
func (r *CarRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Car, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	return collectMany[model.Car](ctx, r.pool, carsTable, selectCars().Where(sq.Eq{"c.id": keys}))
}

// carFilter maps each set query field to one WHERE condition.
func carFilter(q *model.ListCarsQuery) sq.And {
	where := sq.And{}
	if q.BrandID != "" {
		where = append(where, sq.Eq{"c.brand_id": q.BrandID})
	}
	if q.Brand != "" {
		where = append(where, sq.Expr("LOWER(b.name) = LOWER(?)", q.Brand))
	}
	if q.Search != "" {
		pattern := likePattern(q.Search)
		where = append(where, sq.Or{sq.ILike{"c.model": pattern}, sq.ILike{"b.name": pattern}})
	}
	if q.MinPrice > 0 {
		where = append(where, sq.GtOrEq{"c.price": q.MinPrice})
	}
	if q.MaxPrice > 0 {
		where = append(where, sq.LtOrEq{"c.price": q.MaxPrice})
	}
	if q.MinYear > 0 {
		where = append(where, sq.GtOrEq{"c.year": q.MinYear})
	}
	if q.MaxYear > 0 {
		where = append(where, sq.LtOrEq{"c.year": q.MaxYear})
	}
	if q.MaxMileage > 0 {
		where = append(where, sq.LtOrEq{"c.mileage": q.MaxMileage})
	}
	if q.MinHorsepower > 0 {
		where = append(where, sq.GtOrEq{"c.horsepower": q.MinHorsepower})
	}
	if q.FuelType != "" {
		where = append(where, sq.Eq{"c.fuel_type": q.FuelType})
	}
	if q.Transmission != "" {
		where = append(where, sq.Eq{"c.transmission": q.Transmission})
	}
	if q.BodyType != "" {
		where = append(where, sq.Eq{"c.body_type": q.BodyType})
	}
	return where
}

func listCarsStatement(q *model.ListCarsQuery) sq.SelectBuilder {
	return selectCars().
		Where(carFilter(q)).
		OrderBy(orderBy(carSorts, q.Sort, q.Order, "created_at"), "c.id").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset()))
}

func (r *CarRepository) List(ctx context.Context, q *model.ListCarsQuery) (*model.PaginatedResponse[model.Car], error) {
	q.Normalize()
	if q.Sort == "" && q.Order == "" {
		q.Order = "desc"
	}

	total, err := count(ctx, r.pool, psql.Select("COUNT(*)").From(carsFrom).Where(carFilter(q)))
	if err != nil {
		return nil, err
	}

	cars, err := collectMany[model.Car](ctx, r.pool, carsTable, listCarsStatement(q))
	if err != nil {
		return nil, err
	}

	resp := model.NewPaginatedResponse(cars, q.Page, q.Limit, total)
	return &resp, nil
}

func (r *CarRepository) Update(ctx context.Context, p *model.UpdateCarPayload) (*model.Car, error) {
	set := map[string]any{}
	if p.BrandID != nil {
		set["brand_id"] = p.BrandID.String()
	}
	if p.Model != nil {
		set["model"] = *p.Model
	}
	if p.Year != nil {
		set["year"] = *p.Year
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Mileage != nil {
		set["mileage"] = *p.Mileage
	}
	if p.FuelType != nil {
		set["fuel_type"] = *p.FuelType
	}
	if p.Transmission != nil {
		set["transmission"] = *p.Transmission
	}
	if p.BodyType != nil {
		set["body_type"] = *p.BodyType
	}
	if p.Color != nil {
		set["color"] = *p.Color
	}
	if p.Horsepower != nil {
		set["horsepower"] = *p.Horsepower
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.ImageURL != nil {
		set["image_url"] = *p.ImageURL
	}

	if len(set) > 0 {
		stmt := psql.Update(carsTable).SetMap(set).Where(sq.Eq{"id": p.ID})
		if err := exec(ctx, r.pool, carsTable, stmt); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, p.UUID())
}

// Delete removes the car. Its reviews cascade.
func (r *CarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return exec(ctx, r.pool, carsTable, psql.Delete(carsTable).Where(sq.Eq{"id": id.String()}))
}
