package services

import (
	"log/slog"
	"moviereviews/proj/internal/config"
	"moviereviews/proj/internal/services/auth"
	"moviereviews/proj/internal/services/movies"
	"moviereviews/proj/internal/services/reviews"
)

// Storage groups the stores the services are built on. Both the postgres
// models and the in-memory test store satisfy it.
type Storage struct {
	Users   auth.UsersStorage
	Tokens  auth.TokensStorage
	Movies  movies.MoviesStorage
	Reviews reviews.ReviewsStorage
}

type Services struct {
	Auth    *auth.AuthService
	Movies  *movies.MovieService
	Reviews *reviews.ReviewService
}

func New(log *slog.Logger, cfg *config.Config, storage Storage) *Services {
	return &Services{
		Auth:    auth.New(log, storage.Users, storage.Tokens, cfg.Auth.BcryptCost),
		Movies:  movies.New(log, storage.Movies),
		Reviews: reviews.New(log, storage.Reviews, storage.Movies),
	}
}
