// Package service holds the business rules between handlers and
// repositories: password hashing, token issuance, ownership checks,
// caching and background job enqueueing.
//
// Repositories are consumed through the interfaces below so the rules can
// be exercised without a database.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/repository"
	"github.com/deppfellow/carcatalog/internal/sqlerr"
)

type BrandRepository interface {
	Create(ctx context.Context, p *model.CreateBrandPayload) (*model.Brand, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	GetByName(ctx context.Context, name string) (*model.Brand, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, q *model.ListBrandsQuery) (*model.PaginatedResponse[model.Brand], error)
	Update(ctx context.Context, p *model.UpdateBrandPayload) (*model.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CarRepository interface {
	Create(ctx context.Context, p *model.CreateCarPayload) (*model.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Car, error)
	List(ctx context.Context, q *model.ListCarsQuery) (*model.PaginatedResponse[model.Car], error)
	Update(ctx context.Context, p *model.UpdateCarPayload) (*model.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, p repository.CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, q *model.ListUsersQuery) (*model.PaginatedResponse[model.User], error)
	Update(ctx context.Context, id uuid.UUID, p repository.UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, userID uuid.UUID, p *model.CreateReviewPayload) (*model.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	ListByCar(ctx context.Context, carID uuid.UUID, p model.Pagination) (*model.PaginatedResponse[model.Review], error)
	ListByUser(ctx context.Context, userID uuid.UUID, p model.Pagination) (*model.PaginatedResponse[model.Review], error)
	Update(ctx context.Context, p *model.UpdateReviewPayload) (*model.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RatingSummary(ctx context.Context, carID uuid.UUID) (*model.RatingSummary, error)
}

// WelcomeMailer queues the welcome email of a new account.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, username string) error
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// CanModify reports whether the actor owns the resource or is an admin.
func (a Actor) CanModify(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == ownerID
}

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	return sqlerr.ErrCode(err) == sqlerr.UniqueViolation
}
