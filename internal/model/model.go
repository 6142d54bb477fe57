// Package model holds the domain records stored in PostgreSQL and the
// request payloads the API accepts for them.
//
// Records use `db` tags so repositories can collect rows with
// pgx.RowToStructByName. Payloads use echo bind tags (`param`, `query`,
// `json`) plus validator tags, and implement validation.Validatable.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/carcatalog/internal/validation"
)

var validate = validation.New()

// Base is embedded by every stored record.
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PaginatedResponse wraps a page of results.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MaxPage      = 10000
)

// NewPaginatedResponse computes TotalPages from total and limit.
func NewPaginatedResponse[T any](data []T, page, limit, total int) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginatedResponse[T]{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Pagination is embedded by list payloads.
type Pagination struct {
	Page  int `query:"page" validate:"omitempty,min=1,max=10000"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Normalize fills defaults for unset values.
func (p *Pagination) Normalize() {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
}

// Offset is the number of rows to skip for the current page. Page and
// Limit are clamped to their validated bounds.
func (p Pagination) Offset() int {
	page := min(max(p.Page, 1), MaxPage)
	limit := min(max(p.Limit, 0), MaxLimit)
	return (page - 1) * limit
}

// IDPayload is the payload of routes whose only input is an :id path segment.
type IDPayload struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (p *IDPayload) Validate() error {
	return validate.Struct(p)
}

// UUID returns the parsed id. Call after Validate.
func (p *IDPayload) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}
