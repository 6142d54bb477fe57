// Package seed loads the baseline catalog (brands, cars) and the admin
// account. Every row is inserted only when absent, so running it again is
// a no-op.
package seed

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/carcatalog/internal/config"
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/repository"
)

type BrandStore interface {
	GetByName(ctx context.Context, name string) (*model.Brand, error)
	Create(ctx context.Context, p *model.CreateBrandPayload) (*model.Brand, error)
}

type CarStore interface {
	Exists(ctx context.Context, brandID uuid.UUID, carModel string, year int) (bool, error)
	Create(ctx context.Context, p *model.CreateCarPayload) (*model.Car, error)
}

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, p repository.CreateUserParams) (*model.User, error)
}

// PasswordHasher is satisfied by *service.AuthService.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Counts is the outcome of one kind of row.
type Counts struct {
	Inserted int
	Skipped  int
}

type Report struct {
	Brands Counts
	Cars   Counts
	Admin  Counts
}

type Seeder struct {
	brands BrandStore
	cars   CarStore
	users  UserStore
	hasher PasswordHasher
	admin  config.SeedConfig
	logger *zerolog.Logger
}

func NewSeeder(brands BrandStore, cars CarStore, users UserStore, hasher PasswordHasher, admin config.SeedConfig, logger *zerolog.Logger) *Seeder {
	return &Seeder{
		brands: brands,
		cars:   cars,
		users:  users,
		hasher: hasher,
		admin:  admin,
		logger: logger,
	}
}

func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	byName := make(map[string]*model.Brand, len(brands))
	for _, b := range brands {
		brand, inserted, err := s.ensureBrand(ctx, b)
		if err != nil {
			return report, err
		}
		byName[b.Name] = brand
		report.Brands.add(inserted)
	}

	for _, c := range cars {
		brand, ok := byName[c.Brand]
		if !ok {
			return report, errors.Errorf("car %s %s references unknown brand", c.Brand, c.Model)
		}

		exists, err := s.cars.Exists(ctx, brand.ID, c.Model, c.Year)
		if err != nil {
			return report, errors.Wrapf(err, "check car %s %s %d", c.Brand, c.Model, c.Year)
		}
		if exists {
			report.Cars.add(false)
			continue
		}

		if _, err := s.cars.Create(ctx, c.payload(brand)); err != nil {
			return report, errors.Wrapf(err, "insert car %s %s %d", c.Brand, c.Model, c.Year)
		}
		report.Cars.add(true)
	}

	if err := s.ensureAdmin(ctx, &report.Admin); err != nil {
		return report, err
	}

	s.logger.Info().
		Int("brands_inserted", report.Brands.Inserted).
		Int("brands_skipped", report.Brands.Skipped).
		Int("cars_inserted", report.Cars.Inserted).
		Int("cars_skipped", report.Cars.Skipped).
		Int("admin_inserted", report.Admin.Inserted).
		Int("admin_skipped", report.Admin.Skipped).
		Msg("seed completed")

	return report, nil
}

func (c *Counts) add(inserted bool) {
	if inserted {
		c.Inserted++
	} else {
		c.Skipped++
	}
}

func (s *Seeder) ensureBrand(ctx context.Context, b brandSeed) (*model.Brand, bool, error) {
	existing, err := s.brands.GetByName(ctx, b.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, errors.Wrapf(err, "look up brand %s", b.Name)
	}

	created, err := s.brands.Create(ctx, b.payload())
	if err != nil {
		return nil, false, errors.Wrapf(err, "insert brand %s", b.Name)
	}
	return created, true, nil
}

// ensureAdmin creates the configured admin unless an account with that
// email exists. Nothing is counted when no admin is configured.
func (s *Seeder) ensureAdmin(ctx context.Context, counts *Counts) error {
	if s.admin.AdminEmail == "" || s.admin.AdminPassword == "" {
		s.logger.Info().Msg("no admin configured, skipping admin seed")
		return nil
	}

	email := strings.ToLower(s.admin.AdminEmail)

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		counts.add(false)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrap(err, "look up admin")
	}

	hash, err := s.hasher.HashPassword(s.admin.AdminPassword)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}

	username := s.admin.AdminUsername
	if username == "" {
		username = "admin"
	}

	if _, err := s.users.Create(ctx, repository.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}); err != nil {
		return errors.Wrap(err, "insert admin")
	}

	counts.add(true)
	return nil
}
