package model

import "github.com/google/uuid"

// Review is a user's rating of a car. A user reviews a car at most once.
type Review struct {
	Base
	CarID    uuid.UUID `json:"carId" db:"car_id"`
	UserID   uuid.UUID `json:"userId" db:"user_id"`
	Username string    `json:"username" db:"username"`
	Rating   int       `json:"rating" db:"rating"`
	Comment  *string   `json:"comment" db:"comment"`
}

// RatingSummary aggregates the reviews of one car.
type RatingSummary struct {
	Average float64 `json:"average" db:"average"`
	Count   int     `json:"count" db:"count"`
}

type CreateReviewPayload struct {
	CarID   string  `param:"id" json:"-" validate:"required,uuid"`
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

func (p *CreateReviewPayload) Validate() error {
	return validate.Struct(p)
}

func (p *CreateReviewPayload) CarUUID() uuid.UUID {
	return uuid.MustParse(p.CarID)
}

type UpdateReviewPayload struct {
	ID      string  `param:"id" json:"-" validate:"required,uuid"`
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

func (p *UpdateReviewPayload) Validate() error {
	return validate.Struct(p)
}

func (p *UpdateReviewPayload) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// ListReviewsQuery lists the reviews of a car or of a user, selected by
// the :id path segment of the route.
type ListReviewsQuery struct {
	Pagination
	ID string `param:"id" validate:"required,uuid"`
}

func (q *ListReviewsQuery) Validate() error {
	return validate.Struct(q)
}

func (q *ListReviewsQuery) UUID() uuid.UUID {
	return uuid.MustParse(q.ID)
}
