package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/carcatalog/internal/model"
)

const usersTable = "users"

var userColumns = []string{"id", "created_at", "updated_at", "username", "email", "password_hash", "role"}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUserParams is what the service stores for a new account. The
// password is already hashed.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

func (r *UserRepository) Create(ctx context.Context, p CreateUserParams) (*model.User, error) {
	stmt := psql.Insert(usersTable).
		Columns("username", "email", "password_hash", "role").
		Values(p.Username, p.Email, p.PasswordHash, p.Role).
		Suffix("RETURNING " + joinColumns(userColumns))

	return collectOne[model.User](ctx, r.pool, usersTable, stmt)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	stmt := psql.Select(userColumns...).From(usersTable).Where(sq.Eq{"id": id.String()})
	return collectOne[model.User](ctx, r.pool, usersTable, stmt)
}

// GetByEmail matches case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	stmt := psql.Select(userColumns...).From(usersTable).Where("LOWER(email) = LOWER(?)", email)
	return collectOne[model.User](ctx, r.pool, usersTable, stmt)
}

// GetByUsername matches case-insensitively.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	stmt := psql.Select(userColumns...).From(usersTable).Where("LOWER(username) = LOWER(?)", username)
	return collectOne[model.User](ctx, r.pool, usersTable, stmt)
}

func (r *UserRepository) List(ctx context.Context, q *model.ListUsersQuery) (*model.PaginatedResponse[model.User], error) {
	q.Normalize()

	where := sq.And{}
	if q.Role != "" {
		where = append(where, sq.Eq{"role": q.Role})
	}

	total, err := count(ctx, r.pool, psql.Select("COUNT(*)").From(usersTable).Where(where))
	if err != nil {
		return nil, err
	}

	stmt := psql.Select(userColumns...).
		From(usersTable).
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset()))

	users, err := collectMany[model.User](ctx, r.pool, usersTable, stmt)
	if err != nil {
		return nil, err
	}

	resp := model.NewPaginatedResponse(users, q.Page, q.Limit, total)
	return &resp, nil
}

// UpdateUserParams holds the columns to change. Nil fields are kept.
type UpdateUserParams struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *string
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, p UpdateUserParams) (*model.User, error) {
	set := map[string]any{}
	if p.Username != nil {
		set["username"] = *p.Username
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		set["password_hash"] = *p.PasswordHash
	}
	if p.Role != nil {
		set["role"] = *p.Role
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	stmt := psql.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"id": id.String()}).
		Suffix("RETURNING " + joinColumns(userColumns))

	return collectOne[model.User](ctx, r.pool, usersTable, stmt)
}

// Delete removes the account. Its reviews cascade.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return exec(ctx, r.pool, usersTable, psql.Delete(usersTable).Where(sq.Eq{"id": id.String()}))
}
