package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/carcatalog/internal/model"
)

type catalog struct {
	brands  *fakeBrands
	cars    *fakeCars
	reviews *fakeReviews
	brand   *BrandService
	car     *CarService
	review  *ReviewService
}

func newCatalog(cache *Cache) *catalog {
	c := &catalog{brands: newFakeBrands(), cars: newFakeCars(), reviews: newFakeReviews()}
	c.brand = NewBrandService(c.brands, c.cars, cache)
	c.car = NewCarService(c.cars, c.brands, c.reviews, cache)
	c.review = NewReviewService(c.reviews, c.car, cache)
	return c
}

func TestBrandService_NameConflict(t *testing.T) {
	c := newCatalog(nil)
	ctx := context.Background()

	audi, err := c.brand.Create(ctx, &model.CreateBrandPayload{Name: "Audi"})
	require.NoError(t, err)

	_, err = c.brand.Create(ctx, &model.CreateBrandPayload{Name: "audi"})
	requireStatus(t, err, http.StatusConflict)

	bmw := c.brands.add("BMW")
	_, err = c.brand.Update(ctx, &model.UpdateBrandPayload{ID: bmw.ID.String(), Name: ptr("AUDI")})
	requireStatus(t, err, http.StatusConflict)

	renamed, err := c.brand.Update(ctx, &model.UpdateBrandPayload{ID: audi.ID.String(), Name: ptr("Audi")})
	require.NoError(t, err, "keeping its own name is fine")
	assert.Equal(t, audi.ID, renamed.ID)
}

func TestBrandService_ListCars(t *testing.T) {
	c := newCatalog(nil)
	ctx := context.Background()

	toyota := c.brands.add("Toyota")
	honda := c.brands.add("Honda")
	c.cars.add(toyota, "Corolla", 2020)
	c.cars.add(toyota, "Yaris", 2021)
	c.cars.add(honda, "Civic", 2019)

	resp, err := c.brand.ListCars(ctx, &model.ListBrandCarsQuery{ID: toyota.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, toyota.ID.String(), c.cars.lastQuery.BrandID)

	_, err = c.brand.ListCars(ctx, &model.ListBrandCarsQuery{ID: uuid.NewString()})
	requireStatus(t, err, http.StatusNotFound)
}

func TestCarService_CreateRequiresBrand(t *testing.T) {
	c := newCatalog(nil)
	ctx := context.Background()

	_, err := c.car.Create(ctx, &model.CreateCarPayload{BrandID: uuid.New(), Model: "Ghost", Year: 2020, Price: ptr(decimal.NewFromInt(1))})
	requireStatus(t, err, http.StatusNotFound)

	ford := c.brands.add("Ford")
	car, err := c.car.Create(ctx, &model.CreateCarPayload{BrandID: ford.ID, Model: "Focus", Year: 2018, Price: ptr(decimal.RequireFromString("12999.99"))})
	require.NoError(t, err)
	assert.Equal(t, "12999.99", car.Price.StringFixed(2))

	_, err = c.car.Update(ctx, &model.UpdateCarPayload{ID: car.ID.String(), BrandID: ptr(uuid.New())})
	requireStatus(t, err, http.StatusNotFound)
}

func TestCarService_GetIncludesRating(t *testing.T) {
	c := newCatalog(nil)
	ctx := context.Background()

	car := c.cars.add(c.brands.add("Mazda"), "MX-5", 2022)
	for _, rating := range []int{4, 5} {
		_, err := c.review.Create(ctx, Actor{ID: uuid.New()}, &model.CreateReviewPayload{CarID: car.ID.String(), Rating: rating})
		require.NoError(t, err)
	}

	got, err := c.car.Get(ctx, car.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 2, got.Rating.Count)
	assert.InDelta(t, 4.5, got.Rating.Average, 0.0001)

	_, err = c.car.Get(ctx, uuid.New())
	requireStatus(t, err, http.StatusNotFound)
}

func TestCarService_CompareKeepsRequestOrder(t *testing.T) {
	c := newCatalog(nil)
	ctx := context.Background()

	vw := c.brands.add("Volkswagen")
	a := c.cars.add(vw, "Golf", 2020)
	b := c.cars.add(vw, "Polo", 2021)
	d := c.cars.add(vw, "Passat", 2019)

	ids := []uuid.UUID{d.ID, a.ID, b.ID}
	cars, err := c.car.Compare(ctx, ids)
	require.NoError(t, err)
	require.Len(t, cars, 3)
	for i, id := range ids {
		assert.Equal(t, id, cars[i].ID)
		assert.NotNil(t, cars[i].Rating)
	}

	missing := uuid.New()
	_, err = c.car.Compare(ctx, []uuid.UUID{a.ID, missing})
	httpErr := requireStatus(t, err, http.StatusNotFound)
	assert.Contains(t, httpErr.Message, missing.String())
}

func TestReviewService(t *testing.T) {
	c := newCatalog(nil)
	ctx := context.Background()

	car := c.cars.add(c.brands.add("Kia"), "Ceed", 2021)
	author := Actor{ID: uuid.New(), Role: model.RoleUser}
	stranger := Actor{ID: uuid.New(), Role: model.RoleUser}
	admin := Actor{ID: uuid.New(), Role: model.RoleAdmin}

	_, err := c.review.Create(ctx, author, &model.CreateReviewPayload{CarID: uuid.NewString(), Rating: 3})
	requireStatus(t, err, http.StatusNotFound)

	review, err := c.review.Create(ctx, author, &model.CreateReviewPayload{CarID: car.ID.String(), Rating: 3})
	require.NoError(t, err)

	_, err = c.review.Create(ctx, author, &model.CreateReviewPayload{CarID: car.ID.String(), Rating: 5})
	httpErr := requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "REVIEW_ALREADY_EXISTS", httpErr.Code)

	_, err = c.review.Update(ctx, stranger, &model.UpdateReviewPayload{ID: review.ID.String(), Rating: ptr(1)})
	requireStatus(t, err, http.StatusForbidden)

	updated, err := c.review.Update(ctx, author, &model.UpdateReviewPayload{ID: review.ID.String(), Rating: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	err = c.review.Delete(ctx, stranger, review.ID)
	requireStatus(t, err, http.StatusForbidden)

	require.NoError(t, c.review.Delete(ctx, admin, review.ID))

	list, err := c.review.ListByCar(ctx, &model.ListReviewsQuery{ID: car.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}

func TestCache_UnreachableRedisDegradesToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(NewRedisStore(client), time.Minute, true, &testLogger)
	ctx := context.Background()

	var dest model.Car
	assert.False(t, cache.Get(ctx, "cars:x", &dest))
	cache.Set(ctx, "cars:x", model.Car{Model: "Golf"})
	cache.Delete(ctx, "cars:x")
	cache.DeletePrefix(ctx, "cars:")

	c := newCatalog(cache)
	brand, err := c.brand.Create(ctx, &model.CreateBrandPayload{Name: "Seat"})
	require.NoError(t, err)

	list, err := c.brand.List(ctx, &model.ListBrandsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, brand.ID, list.Data[0].ID)
}

func TestBrandListKey_DistinctQueries(t *testing.T) {
	a := &model.ListBrandsQuery{Search: "a:b"}
	b := &model.ListBrandsQuery{Search: "a", Country: "b:"}
	a.Normalize()
	b.Normalize()

	assert.NotEqual(t, brandListKey(a), brandListKey(b))
	assert.Equal(t, brandListKey(a), brandListKey(&model.ListBrandsQuery{Pagination: a.Pagination, Search: "a:b"}))
}

func TestReviewService_InvalidatesCachedCar(t *testing.T) {
	store := newMemoryStore()
	c := newCatalog(NewCache(store, time.Minute, true, &testLogger))
	ctx := context.Background()

	car := c.cars.add(c.brands.add("Skoda"), "Octavia", 2020)
	author := Actor{ID: uuid.New(), Role: model.RoleUser}

	warm := func() {
		t.Helper()
		_, err := c.car.Get(ctx, car.ID)
		require.NoError(t, err)
		require.True(t, store.cached(carKey(car.ID)))
	}

	warm()
	review, err := c.review.Create(ctx, author, &model.CreateReviewPayload{CarID: car.ID.String(), Rating: 2})
	require.NoError(t, err)
	assert.False(t, store.cached(carKey(car.ID)), "create")

	got, err := c.car.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rating.Count)

	_, err = c.review.Update(ctx, author, &model.UpdateReviewPayload{ID: review.ID.String(), Rating: ptr(5)})
	require.NoError(t, err)
	assert.False(t, store.cached(carKey(car.ID)), "update")

	got, err = c.car.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.Rating.Average, 0.0001)

	require.NoError(t, c.review.Delete(ctx, author, review.ID))
	assert.False(t, store.cached(carKey(car.ID)), "delete")

	warm()
	got, err = c.car.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Rating.Count)
}

type brokenStore struct{ memoryStore }

func (*brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func TestCache_WarnsWithRequestLogger(t *testing.T) {
	var fallback, request bytes.Buffer
	base := zerolog.New(&fallback)
	cache := NewCache(&brokenStore{}, time.Minute, true, &base)

	var dest model.Car
	assert.False(t, cache.Get(context.Background(), "cars:x", &dest))
	assert.Contains(t, fallback.String(), "cache get failed")

	reqLogger := zerolog.New(&request).With().Str("request_id", "req-42").Logger()
	ctx := reqLogger.WithContext(context.Background())
	assert.False(t, cache.Get(ctx, "cars:x", &dest))
	assert.Contains(t, request.String(), `"request_id":"req-42"`)
	assert.Contains(t, request.String(), "cache get failed")
}

func TestCache_NilIsNoop(t *testing.T) {
	var cache *Cache
	var dest model.Car
	assert.False(t, cache.Get(context.Background(), "k", &dest))
	cache.Set(context.Background(), "k", dest)
	cache.Delete(context.Background(), "k")
	cache.DeletePrefix(context.Background(), "k")
}

func TestActor(t *testing.T) {
	owner := uuid.New()
	assert.True(t, Actor{ID: owner}.CanModify(owner))
	assert.False(t, Actor{ID: uuid.New()}.CanModify(owner))
	assert.True(t, Actor{ID: uuid.New(), Role: model.RoleAdmin}.CanModify(owner))
}
