package crud

import (
	"go.uber.org/zap"

	"kinograph/storage"
)

// A ServicesConfig is any function that takes in a pointer to a Services
// object and returns an error. It wraps the constructor of a crud service,
// so main.go can pick services with functional options.
type ServicesConfig func(*Services) error

// Services is a container object holding pointers to all the crud services.
// The services share the stores and the logger provided at construction;
// they hold no entity state of their own.
type Services struct {
	movies *storage.MovieStorage
	users  *storage.UserStorage
	log    *zap.Logger

	Movie *MovieService
	User  *UserService
}

// NewServices returns a new Services object, containing any crud services
// it's told to create by one of the passed in ServicesConfig functions.
func NewServices(movies *storage.MovieStorage, users *storage.UserStorage, log *zap.Logger, cfgs ...ServicesConfig) (*Services, error) {
	s := Services{
		movies: movies,
		users:  users,
		log:    log,
	}
	for _, cfg := range cfgs {
		if err := cfg(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// WithMovie wraps the constructor of MovieService, NewMovieService.
// The movie service gets a read-only view of the user store so it can
// validate liker ids without being able to write users.
func WithMovie() ServicesConfig {
	return func(s *Services) error {
		s.Movie = NewMovieService(s.movies, s.users, s.log)
		return nil
	}
}

// WithUser wraps the constructor of UserService, NewUserService.
func WithUser() ServicesConfig {
	return func(s *Services) error {
		s.User = NewUserService(s.users, s.log)
		return nil
	}
}
