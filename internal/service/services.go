package service

import (
	"github.com/deppfellow/carcatalog/internal/lib/job"
	"github.com/deppfellow/carcatalog/internal/repository"
	"github.com/deppfellow/carcatalog/internal/server"
)

type Services struct {
	Auth   *AuthService
	User   *UserService
	Brand  *BrandService
	Car    *CarService
	Review *ReviewService
	Job    *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var store CacheStore
	if s.Redis != nil {
		store = NewRedisStore(s.Redis)
	}
	cache := NewCache(store, s.Config.Cache.TTL, s.Config.Cache.Enabled, s.Logger)

	var mailer WelcomeMailer
	if s.Job != nil {
		mailer = s.Job
	}

	auth := NewAuthService(repos.User, mailer, s.Config.Auth, s.Logger)
	cars := NewCarService(repos.Car, repos.Brand, repos.Review, cache)

	return &Services{
		Auth:   auth,
		User:   NewUserService(repos.User, auth, cache),
		Brand:  NewBrandService(repos.Brand, repos.Car, cache),
		Car:    cars,
		Review: NewReviewService(repos.Review, cars, cache),
		Job:    s.Job,
	}
}
