package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/carcatalog/internal/model"
)

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "c.price DESC", orderBy(carSorts, "price", "desc", "created_at"))
	assert.Equal(t, "c.created_at ASC", orderBy(carSorts, "bogus", "", "created_at"))
	assert.Equal(t, "name ASC", orderBy(brandSorts, "", "ASC", "name"))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%golf%", likePattern("golf"))
	assert.Equal(t, `%100\%\_x%`, likePattern("100%_x"))
}

func TestCarFilter_Empty(t *testing.T) {
	q := &model.ListCarsQuery{}
	q.Normalize()

	sql, args, err := listCarsStatement(q).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM cars c JOIN brands b ON b.id = c.brand_id")
	assert.Contains(t, sql, "LIMIT 20 OFFSET 0")
	assert.Empty(t, args)
}

func TestCarFilter_MapsEachFieldToOneCondition(t *testing.T) {
	q := &model.ListCarsQuery{
		Brand:         "Toyota",
		Search:        "cor",
		MinPrice:      1000,
		MaxPrice:      20000,
		MinYear:       2015,
		MaxMileage:    80000,
		MinHorsepower: 90,
		FuelType:      model.FuelHybrid,
		Transmission:  model.TransmissionAutomatic,
		BodyType:      "sedan",
		Sort:          "price",
		Order:         "asc",
	}
	q.Page = 2
	q.Limit = 10

	sql, args, err := listCarsStatement(q).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "LOWER(b.name) = LOWER($1)")
	assert.Contains(t, sql, "(c.model ILIKE $2 OR b.name ILIKE $3)")
	assert.Contains(t, sql, "c.price >= $4")
	assert.Contains(t, sql, "c.price <= $5")
	assert.Contains(t, sql, "c.year >= $6")
	assert.Contains(t, sql, "c.mileage <= $7")
	assert.Contains(t, sql, "c.horsepower >= $8")
	assert.Contains(t, sql, "c.fuel_type = $9")
	assert.Contains(t, sql, "c.transmission = $10")
	assert.Contains(t, sql, "c.body_type = $11")
	assert.Contains(t, sql, "ORDER BY c.price ASC, c.id")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 10")

	assert.Equal(t, []any{
		"Toyota", "%cor%", "%cor%", float64(1000), float64(20000), 2015, 80000, 90,
		"hybrid", "automatic", "sedan",
	}, args)
}

func TestBrandFilter(t *testing.T) {
	q := &model.ListBrandsQuery{Search: "aud", Country: "Germany"}

	sql, args, err := psql.Select("id").From(brandsTable).Where(brandFilter(q)).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM brands WHERE (name ILIKE $1 AND LOWER(country) = LOWER($2))", sql)
	assert.Equal(t, []any{"%aud%", "Germany"}, args)
}

func TestExactMatchFiltersKeepWildcardsLiteral(t *testing.T) {
	sql, args, err := psql.Select("id").From(brandsTable).Where(brandFilter(&model.ListBrandsQuery{Country: "J_pan%"})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM brands WHERE (LOWER(country) = LOWER($1))", sql)
	assert.Equal(t, []any{"J_pan%"}, args)

	sql, args, err = psql.Select("c.id").From(carsFrom).Where(carFilter(&model.ListCarsQuery{Brand: "B%"})).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "ILIKE")
	assert.Contains(t, sql, "LOWER(b.name) = LOWER($1)")
	assert.Equal(t, []any{"B%"}, args)
}
