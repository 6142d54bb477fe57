package model

import (
	"fmt"
	"strings"

	"github.com/deppfellow/carcatalog/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	FuelPetrol   = "petrol"
	FuelDiesel   = "diesel"
	FuelElectric = "electric"
	FuelHybrid   = "hybrid"

	TransmissionManual    = "manual"
	TransmissionAutomatic = "automatic"
)

// Car is a listing in the catalog.
type Car struct {
	Base
	BrandID      uuid.UUID       `json:"brandId" db:"brand_id"`
	BrandName    string          `json:"brandName" db:"brand_name"`
	Model        string          `json:"model" db:"model"`
	Year         int             `json:"year" db:"year"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Mileage      int             `json:"mileage" db:"mileage"`
	FuelType     string          `json:"fuelType" db:"fuel_type"`
	Transmission string          `json:"transmission" db:"transmission"`
	BodyType     string          `json:"bodyType" db:"body_type"`
	Color        *string         `json:"color" db:"color"`
	Horsepower   *int            `json:"horsepower" db:"horsepower"`
	Description  *string         `json:"description" db:"description"`
	ImageURL     *string         `json:"imageUrl" db:"image_url"`

	// Rating is filled on single-car reads.
	Rating *RatingSummary `json:"rating,omitempty" db:"-"`
}

type CreateCarPayload struct {
	BrandID      uuid.UUID        `json:"brandId" validate:"required"`
	Model        string           `json:"model" validate:"required,min=1,max=100"`
	Year         int              `json:"year" validate:"required,min=1886,max=2100"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	Mileage      int              `json:"mileage" validate:"min=0"`
	FuelType     string           `json:"fuelType" validate:"required,oneof=petrol diesel electric hybrid"`
	Transmission string           `json:"transmission" validate:"required,oneof=manual automatic"`
	BodyType     string           `json:"bodyType" validate:"required,oneof=sedan hatchback suv coupe convertible wagon pickup van"`
	Color        *string          `json:"color" validate:"omitempty,max=50"`
	Horsepower   *int             `json:"horsepower" validate:"omitempty,min=1,max=2000"`
	Description  *string          `json:"description" validate:"omitempty,max=5000"`
	ImageURL     *string          `json:"imageUrl" validate:"omitempty,url,max=500"`
}

func (p *CreateCarPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	// required has already rejected a nil Price.
	if p.Price.IsNegative() {
		return validation.CustomValidationErrors{{Field: "price", Message: "must be at least 0"}}
	}
	return nil
}

// UpdateCarPayload is a partial update: nil fields are left untouched.
type UpdateCarPayload struct {
	ID           string           `param:"id" json:"-" validate:"required,uuid"`
	BrandID      *uuid.UUID       `json:"brandId"`
	Model        *string          `json:"model" validate:"omitempty,min=1,max=100"`
	Year         *int             `json:"year" validate:"omitempty,min=1886,max=2100"`
	Price        *decimal.Decimal `json:"price"`
	Mileage      *int             `json:"mileage" validate:"omitempty,min=0"`
	FuelType     *string          `json:"fuelType" validate:"omitempty,oneof=petrol diesel electric hybrid"`
	Transmission *string          `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	BodyType     *string          `json:"bodyType" validate:"omitempty,oneof=sedan hatchback suv coupe convertible wagon pickup van"`
	Color        *string          `json:"color" validate:"omitempty,max=50"`
	Horsepower   *int             `json:"horsepower" validate:"omitempty,min=1,max=2000"`
	Description  *string          `json:"description" validate:"omitempty,max=5000"`
	ImageURL     *string          `json:"imageUrl" validate:"omitempty,url,max=500"`
}

func (p *UpdateCarPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if p.Price != nil && p.Price.IsNegative() {
		return validation.CustomValidationErrors{{Field: "price", Message: "must be at least 0"}}
	}
	return nil
}

func (p *UpdateCarPayload) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// ListCarsQuery carries the listing filters. Zero values mean "no filter".
type ListCarsQuery struct {
	Pagination
	BrandID       string  `query:"brandId" validate:"omitempty,uuid"`
	Brand         string  `query:"brand" validate:"omitempty,max=100"`
	Search        string  `query:"q" validate:"omitempty,max=100"`
	MinPrice      float64 `query:"minPrice" validate:"omitempty,min=0"`
	MaxPrice      float64 `query:"maxPrice" validate:"omitempty,min=0"`
	MinYear       int     `query:"minYear" validate:"omitempty,min=1886,max=2100"`
	MaxYear       int     `query:"maxYear" validate:"omitempty,min=1886,max=2100"`
	MaxMileage    int     `query:"maxMileage" validate:"omitempty,min=0"`
	MinHorsepower int     `query:"minHorsepower" validate:"omitempty,min=1"`
	FuelType      string  `query:"fuelType" validate:"omitempty,oneof=petrol diesel electric hybrid"`
	Transmission  string  `query:"transmission" validate:"omitempty,oneof=manual automatic"`
	BodyType      string  `query:"bodyType" validate:"omitempty,oneof=sedan hatchback suv coupe convertible wagon pickup van"`
	Sort          string  `query:"sort" validate:"omitempty,oneof=price year mileage horsepower created_at"`
	Order         string  `query:"order" validate:"omitempty,oneof=asc desc"`
}

func (q *ListCarsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}

	var errs validation.CustomValidationErrors
	if q.MinPrice > 0 && q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		errs = append(errs, validation.CustomValidationError{Field: "minPrice", Message: "must not exceed maxPrice"})
	}
	if q.MinYear > 0 && q.MaxYear > 0 && q.MinYear > q.MaxYear {
		errs = append(errs, validation.CustomValidationError{Field: "minYear", Message: "must not exceed maxYear"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

const (
	MinCompare = 2
	MaxCompare = 4
)

// CompareCarsQuery selects the cars of a comparison view: ?ids=a,b,c
type CompareCarsQuery struct {
	IDs string `query:"ids" validate:"required"`

	parsed []uuid.UUID
}

func (q *CompareCarsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}

	parts := strings.Split(q.IDs, ",")
	seen := make(map[uuid.UUID]struct{}, len(parts))
	ids := make([]uuid.UUID, 0, len(parts))

	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return validation.CustomValidationErrors{{Field: "ids", Message: "must be a comma-separated list of valid UUIDs"}}
		}
		if _, dup := seen[id]; dup {
			return validation.CustomValidationErrors{{Field: "ids", Message: "must not contain duplicates"}}
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) < MinCompare || len(ids) > MaxCompare {
		return validation.CustomValidationErrors{{
			Field:   "ids",
			Message: fmt.Sprintf("must contain between %d and %d ids", MinCompare, MaxCompare),
		}}
	}

	q.parsed = ids
	return nil
}

// ParsedIDs returns the ids in request order. Call after Validate.
func (q *CompareCarsQuery) ParsedIDs() []uuid.UUID {
	return q.parsed
}
