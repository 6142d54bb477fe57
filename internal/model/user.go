package model

import "github.com/google/uuid"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account. PasswordHash never leaves the server.
type User struct {
	Base
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
}

type RegisterPayload struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (p *RegisterPayload) Validate() error {
	return validate.Struct(p)
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *LoginPayload) Validate() error {
	return validate.Struct(p)
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      *User  `json:"user"`
}

// UpdateUserPayload is a partial update. Role may only be changed by an admin.
type UpdateUserPayload struct {
	ID       string  `param:"id" json:"-" validate:"required,uuid"`
	Username *string `json:"username" validate:"omitempty,min=3,max=50,alphanum"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (p *UpdateUserPayload) Validate() error {
	return validate.Struct(p)
}

func (p *UpdateUserPayload) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

type ListUsersQuery struct {
	Pagination
	Role string `query:"role" validate:"omitempty,oneof=user admin"`
}

func (q *ListUsersQuery) Validate() error {
	return validate.Struct(q)
}

// EmptyPayload is used by routes that take no input.
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error {
	return nil
}
