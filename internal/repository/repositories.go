package repository

import (
	"github.com/deppfellow/carcatalog/internal/server"
)

type Repositories struct {
	Brand  *BrandRepository
	Car    *CarRepository
	User   *UserRepository
	Review *ReviewRepository
}

func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool
	return &Repositories{
		Brand:  NewBrandRepository(pool),
		Car:    NewCarRepository(pool),
		User:   NewUserRepository(pool),
		Review: NewReviewRepository(pool),
	}
}
