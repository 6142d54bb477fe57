package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/carcatalog/internal/config"
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/repository"
	"github.com/deppfellow/carcatalog/internal/sqlerr"
)

var testLogger = zerolog.Nop()

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:  "test-secret-key-that-is-at-least-32-bytes",
		Issuer:     "carcatalog-test",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	}
}

func newBase() model.Base {
	now := time.Now().UTC()
	return model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, p repository.CreateUserParams) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &model.User{Base: newBase(), Username: p.Username, Email: p.Email, PasswordHash: p.PasswordHash, Role: p.Role}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sqlerr.NotFound("users")
}

func (f *fakeUsers) find(match func(*model.User) bool) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sqlerr.NotFound("users")
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return strings.EqualFold(u.Username, username) })
}

func (f *fakeUsers) List(_ context.Context, q *model.ListUsersQuery) (*model.PaginatedResponse[model.User], error) {
	q.Normalize()
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	resp := model.NewPaginatedResponse(out, q.Page, q.Limit, len(out))
	return &resp, nil
}

func (f *fakeUsers) Update(_ context.Context, id uuid.UUID, p repository.UpdateUserParams) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, sqlerr.NotFound("users")
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return sqlerr.NotFound("users")
	}
	delete(f.users, id)
	return nil
}

type fakeBrands struct {
	brands map[uuid.UUID]*model.Brand
}

func newFakeBrands() *fakeBrands {
	return &fakeBrands{brands: map[uuid.UUID]*model.Brand{}}
}

func (f *fakeBrands) add(name string) *model.Brand {
	b := &model.Brand{Base: newBase(), Name: name}
	f.brands[b.ID] = b
	return b
}

func (f *fakeBrands) Create(_ context.Context, p *model.CreateBrandPayload) (*model.Brand, error) {
	b := &model.Brand{Base: newBase(), Name: p.Name, Country: p.Country, FoundedYear: p.FoundedYear}
	f.brands[b.ID] = b
	return b, nil
}

func (f *fakeBrands) GetByID(_ context.Context, id uuid.UUID) (*model.Brand, error) {
	if b, ok := f.brands[id]; ok {
		return b, nil
	}
	return nil, sqlerr.NotFound("brands")
}

func (f *fakeBrands) GetByName(_ context.Context, name string) (*model.Brand, error) {
	for _, b := range f.brands {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return nil, sqlerr.NotFound("brands")
}

func (f *fakeBrands) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.brands[id]
	return ok, nil
}

func (f *fakeBrands) List(_ context.Context, q *model.ListBrandsQuery) (*model.PaginatedResponse[model.Brand], error) {
	q.Normalize()
	var out []model.Brand
	for _, b := range f.brands {
		out = append(out, *b)
	}
	resp := model.NewPaginatedResponse(out, q.Page, q.Limit, len(out))
	return &resp, nil
}

func (f *fakeBrands) Update(_ context.Context, p *model.UpdateBrandPayload) (*model.Brand, error) {
	b, ok := f.brands[p.UUID()]
	if !ok {
		return nil, sqlerr.NotFound("brands")
	}
	if p.Name != nil {
		b.Name = *p.Name
	}
	return b, nil
}

func (f *fakeBrands) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.brands[id]; !ok {
		return sqlerr.NotFound("brands")
	}
	delete(f.brands, id)
	return nil
}

type fakeCars struct {
	cars      map[uuid.UUID]*model.Car
	lastQuery *model.ListCarsQuery
}

func newFakeCars() *fakeCars {
	return &fakeCars{cars: map[uuid.UUID]*model.Car{}}
}

func (f *fakeCars) add(brand *model.Brand, modelName string, year int) *model.Car {
	c := &model.Car{Base: newBase(), BrandID: brand.ID, BrandName: brand.Name, Model: modelName, Year: year}
	f.cars[c.ID] = c
	return c
}

func (f *fakeCars) Create(_ context.Context, p *model.CreateCarPayload) (*model.Car, error) {
	c := &model.Car{Base: newBase(), BrandID: p.BrandID, Model: p.Model, Year: p.Year, Price: *p.Price}
	f.cars[c.ID] = c
	return c, nil
}

func (f *fakeCars) GetByID(_ context.Context, id uuid.UUID) (*model.Car, error) {
	if c, ok := f.cars[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sqlerr.NotFound("cars")
}

func (f *fakeCars) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.Car, error) {
	var out []model.Car
	// map iteration scrambles order, like an unordered IN query
	for id, c := range f.cars {
		for _, want := range ids {
			if id == want {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

func (f *fakeCars) List(_ context.Context, q *model.ListCarsQuery) (*model.PaginatedResponse[model.Car], error) {
	q.Normalize()
	f.lastQuery = q
	var out []model.Car
	for _, c := range f.cars {
		if q.BrandID == "" || c.BrandID.String() == q.BrandID {
			out = append(out, *c)
		}
	}
	resp := model.NewPaginatedResponse(out, q.Page, q.Limit, len(out))
	return &resp, nil
}

func (f *fakeCars) Update(_ context.Context, p *model.UpdateCarPayload) (*model.Car, error) {
	c, ok := f.cars[p.UUID()]
	if !ok {
		return nil, sqlerr.NotFound("cars")
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.BrandID != nil {
		c.BrandID = *p.BrandID
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCars) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.cars[id]; !ok {
		return sqlerr.NotFound("cars")
	}
	delete(f.cars, id)
	return nil
}

type fakeReviews struct {
	reviews map[uuid.UUID]*model.Review
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{reviews: map[uuid.UUID]*model.Review{}}
}

func (f *fakeReviews) Create(_ context.Context, userID uuid.UUID, p *model.CreateReviewPayload) (*model.Review, error) {
	carID := p.CarUUID()
	for _, r := range f.reviews {
		if r.CarID == carID && r.UserID == userID {
			return nil, &pgconn.PgError{Code: "23505", TableName: "reviews", ConstraintName: "unique_reviews_car_user"}
		}
	}
	r := &model.Review{Base: newBase(), CarID: carID, UserID: userID, Rating: p.Rating, Comment: p.Comment}
	f.reviews[r.ID] = r
	return r, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id uuid.UUID) (*model.Review, error) {
	if r, ok := f.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, sqlerr.NotFound("reviews")
}

func (f *fakeReviews) list(match func(*model.Review) bool, p model.Pagination) *model.PaginatedResponse[model.Review] {
	p.Normalize()
	var out []model.Review
	for _, r := range f.reviews {
		if match(r) {
			out = append(out, *r)
		}
	}
	resp := model.NewPaginatedResponse(out, p.Page, p.Limit, len(out))
	return &resp
}

func (f *fakeReviews) ListByCar(_ context.Context, carID uuid.UUID, p model.Pagination) (*model.PaginatedResponse[model.Review], error) {
	return f.list(func(r *model.Review) bool { return r.CarID == carID }, p), nil
}

func (f *fakeReviews) ListByUser(_ context.Context, userID uuid.UUID, p model.Pagination) (*model.PaginatedResponse[model.Review], error) {
	return f.list(func(r *model.Review) bool { return r.UserID == userID }, p), nil
}

func (f *fakeReviews) Update(_ context.Context, p *model.UpdateReviewPayload) (*model.Review, error) {
	r, ok := f.reviews[p.UUID()]
	if !ok {
		return nil, sqlerr.NotFound("reviews")
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		r.Comment = p.Comment
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviews) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return sqlerr.NotFound("reviews")
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviews) RatingSummary(_ context.Context, carID uuid.UUID) (*model.RatingSummary, error) {
	var sum, n int
	for _, r := range f.reviews {
		if r.CarID == carID {
			sum += r.Rating
			n++
		}
	}
	s := &model.RatingSummary{Count: n}
	if n > 0 {
		s.Average = float64(sum) / float64(n)
	}
	return s, nil
}

type fakeMailer struct {
	to, username string
	err          error
}

func (f *fakeMailer) EnqueueWelcomeEmail(_ context.Context, to, username string) error {
	f.to, f.username = to, username
	return f.err
}

// memoryStore is a CacheStore over a map. Keys patterns only support a
// trailing "*".
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, redis.Nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryStore) Keys(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// cached reports whether key (without the global prefix) is stored.
func (m *memoryStore) cached(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[cacheKeyPrefix+key]
	return ok
}
