package movies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moviereviews/proj/internal/domain/filters"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/storage"
)

type MoviesStorage interface {
	Insert(ctx context.Context, movie *models.Movie, genres []string) (*models.Movie, error)
	Get(ctx context.Context, id int64) (*models.Movie, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, f filters.Filters) ([]models.Movie, error)
	Update(ctx context.Context, id int64, upd models.MovieUpdate) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
}

func New(log *slog.Logger, storage MoviesStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
	}
}

// Create stores movie together with its genres. Genres are matched by name and
// created on first use.
func (s *MovieService) Create(ctx context.Context, movie *models.Movie, genres []string) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", movie.Title, "genres", genres)
	created, err := s.storage.Insert(ctx, movie, genres)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("movie created", "id", created.ID)
	return created, nil
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movie, nil
}

func (s *MovieService) Count(ctx context.Context) (int, error) {
	count, err := s.storage.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("movies.MovieService.Count: %w", err)
	}
	return count, nil
}

func (s *MovieService) List(ctx context.Context, f filters.Filters) ([]models.Movie, error) {
	movies, err := s.storage.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("movies.MovieService.List: %w", err)
	}
	return movies, nil
}

func (s *MovieService) Update(ctx context.Context, id int64, upd models.MovieUpdate) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("movie updated")
	return movie, nil
}

// Delete removes the movie and every review of it.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("movie deleted")
	return nil
}
