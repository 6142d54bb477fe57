package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/carcatalog/internal/model"
)

const brandsTable = "brands"

var brandColumns = []string{
	"id", "created_at", "updated_at", "name", "country", "founded_year", "logo_url", "description",
}

var brandSorts = map[string]string{
	"name":         "name",
	"founded_year": "founded_year",
	"created_at":   "created_at",
}

type BrandRepository struct {
	pool *pgxpool.Pool
}

func NewBrandRepository(pool *pgxpool.Pool) *BrandRepository {
	return &BrandRepository{pool: pool}
}

func (r *BrandRepository) Create(ctx context.Context, p *model.CreateBrandPayload) (*model.Brand, error) {
	stmt := psql.Insert(brandsTable).
		Columns("name", "country", "founded_year", "logo_url", "description").
		Values(p.Name, p.Country, p.FoundedYear, p.LogoURL, p.Description).
		Suffix("RETURNING " + joinColumns(brandColumns))

	return collectOne[model.Brand](ctx, r.pool, brandsTable, stmt)
}

func (r *BrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	stmt := psql.Select(brandColumns...).
		From(brandsTable).
		Where(sq.Eq{"id": id.String()})

	return collectOne[model.Brand](ctx, r.pool, brandsTable, stmt)
}

// GetByName matches case-insensitively.
func (r *BrandRepository) GetByName(ctx context.Context, name string) (*model.Brand, error) {
	stmt := psql.Select(brandColumns...).
		From(brandsTable).
		Where("LOWER(name) = LOWER(?)", name)

	return collectOne[model.Brand](ctx, r.pool, brandsTable, stmt)
}

func (r *BrandRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := count(ctx, r.pool, psql.Select("COUNT(*)").From(brandsTable).Where(sq.Eq{"id": id.String()}))
	return n > 0, err
}

func brandFilter(q *model.ListBrandsQuery) sq.And {
	where := sq.And{}
	if q.Search != "" {
		where = append(where, sq.ILike{"name": likePattern(q.Search)})
	}
	if q.Country != "" {
		where = append(where, sq.Expr("LOWER(country) = LOWER(?)", q.Country))
	}
	return where
}

func (r *BrandRepository) List(ctx context.Context, q *model.ListBrandsQuery) (*model.PaginatedResponse[model.Brand], error) {
	q.Normalize()
	where := brandFilter(q)

	total, err := count(ctx, r.pool, psql.Select("COUNT(*)").From(brandsTable).Where(where))
	if err != nil {
		return nil, err
	}

	stmt := psql.Select(brandColumns...).
		From(brandsTable).
		Where(where).
		OrderBy(orderBy(brandSorts, q.Sort, q.Order, "name"), "id").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset()))

	brands, err := collectMany[model.Brand](ctx, r.pool, brandsTable, stmt)
	if err != nil {
		return nil, err
	}

	resp := model.NewPaginatedResponse(brands, q.Page, q.Limit, total)
	return &resp, nil
}

func (r *BrandRepository) Update(ctx context.Context, p *model.UpdateBrandPayload) (*model.Brand, error) {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Country != nil {
		set["country"] = *p.Country
	}
	if p.FoundedYear != nil {
		set["founded_year"] = *p.FoundedYear
	}
	if p.LogoURL != nil {
		set["logo_url"] = *p.LogoURL
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if len(set) == 0 {
		return r.GetByID(ctx, p.UUID())
	}

	stmt := psql.Update(brandsTable).
		SetMap(set).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + joinColumns(brandColumns))

	return collectOne[model.Brand](ctx, r.pool, brandsTable, stmt)
}

// Delete removes the brand. Its cars and their reviews cascade.
func (r *BrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return exec(ctx, r.pool, brandsTable, psql.Delete(brandsTable).Where(sq.Eq{"id": id.String()}))
}
