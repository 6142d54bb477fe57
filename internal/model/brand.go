package model

import "github.com/google/uuid"

// Brand is a car manufacturer.
type Brand struct {
	Base
	Name        string  `json:"name" db:"name"`
	Country     *string `json:"country" db:"country"`
	FoundedYear *int    `json:"foundedYear" db:"founded_year"`
	LogoURL     *string `json:"logoUrl" db:"logo_url"`
	Description *string `json:"description" db:"description"`
}

type CreateBrandPayload struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	FoundedYear *int    `json:"foundedYear" validate:"omitempty,min=1800,max=2100"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,url,max=500"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (p *CreateBrandPayload) Validate() error {
	return validate.Struct(p)
}

// UpdateBrandPayload is a partial update: nil fields are left untouched.
type UpdateBrandPayload struct {
	ID          string  `param:"id" json:"-" validate:"required,uuid"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	FoundedYear *int    `json:"foundedYear" validate:"omitempty,min=1800,max=2100"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,url,max=500"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (p *UpdateBrandPayload) Validate() error {
	return validate.Struct(p)
}

func (p *UpdateBrandPayload) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

type ListBrandsQuery struct {
	Pagination
	Search  string `query:"q" validate:"omitempty,max=100"`
	Country string `query:"country" validate:"omitempty,max=100"`
	Sort    string `query:"sort" validate:"omitempty,oneof=name founded_year created_at"`
	Order   string `query:"order" validate:"omitempty,oneof=asc desc"`
}

func (q *ListBrandsQuery) Validate() error {
	return validate.Struct(q)
}

// ListBrandCarsQuery lists the cars of a single brand.
type ListBrandCarsQuery struct {
	Pagination
	ID string `param:"id" validate:"required,uuid"`
}

func (q *ListBrandCarsQuery) Validate() error {
	return validate.Struct(q)
}

func (q *ListBrandCarsQuery) UUID() uuid.UUID {
	return uuid.MustParse(q.ID)
}
