package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/deppfellow/carcatalog/internal/errs"
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/repository"
)

type UserService struct {
	users UserRepository
	auth  *AuthService
	cache *Cache
}

func NewUserService(users UserRepository, auth *AuthService, cache *Cache) *UserService {
	return &UserService{users: users, auth: auth, cache: cache}
}

func forbidden() error {
	return errs.NewForbiddenError("You are not allowed to perform this action", true)
}

func (s *UserService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*model.User, error) {
	if !actor.CanModify(id) {
		return nil, forbidden()
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, actor Actor, q *model.ListUsersQuery) (*model.PaginatedResponse[model.User], error) {
	if !actor.IsAdmin() {
		return nil, forbidden()
	}
	return s.users.List(ctx, q)
}

// Update applies a partial update. Users edit themselves, admins edit
// anyone, and only admins change roles.
func (s *UserService) Update(ctx context.Context, actor Actor, p *model.UpdateUserPayload) (*model.User, error) {
	id := p.UUID()
	if !actor.CanModify(id) {
		return nil, forbidden()
	}
	if p.Role != nil && !actor.IsAdmin() {
		return nil, errs.NewForbiddenError("Only administrators can change roles", true)
	}

	params := repository.UpdateUserParams{
		Username: p.Username,
		Role:     p.Role,
	}

	if p.Username != nil {
		if err := s.ensureFree(ctx, s.users.GetByUsername, *p.Username, id, "Username is already taken"); err != nil {
			return nil, err
		}
	}

	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if err := s.ensureFree(ctx, s.users.GetByEmail, email, id, "Email is already registered"); err != nil {
			return nil, err
		}
		params.Email = &email
	}

	if p.Password != nil {
		hash, err := s.auth.HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		params.PasswordHash = &hash
	}

	return s.users.Update(ctx, id, params)
}

// ensureFree returns 409 when lookup finds a user other than self.
func (s *UserService) ensureFree(
	ctx context.Context,
	lookup func(context.Context, string) (*model.User, error),
	value string,
	self uuid.UUID,
	message string,
) error {
	existing, err := lookup(ctx, value)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return errs.NewConflictError(message, true, errs.Ptr("USER_ALREADY_EXISTS"))
	}
	return nil
}

// Delete removes the user. Their reviews go with them, so every cached
// car rating is dropped.
func (s *UserService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.CanModify(id) {
		return forbidden()
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.DeletePrefix(ctx, carKeyPrefix)
	return nil
}
