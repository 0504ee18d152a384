package reviews

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moviereviews/proj/internal/domain/filters"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/storage"
)

type ReviewsStorage interface {
	Insert(ctx context.Context, review *models.Review) (*models.Review, error)
	Get(ctx context.Context, id int64) (*models.Review, error)
	Count(ctx context.Context, movieID int64) (int, error)
	List(ctx context.Context, movieID int64, f filters.Filters) ([]models.Review, error)
	Delete(ctx context.Context, id int64) error
}

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
}

type ReviewService struct {
	log     *slog.Logger
	storage ReviewsStorage
	movies  MoviesStorage
}

func New(log *slog.Logger, storage ReviewsStorage, movies MoviesStorage) *ReviewService {
	return &ReviewService{
		log:     log,
		storage: storage,
		movies:  movies,
	}
}

type CreateParams struct {
	MovieID       int64
	CriticID      int64
	Stars         int
	Text          string
	Spoilers      bool
	Recomendation *string
}

func (s *ReviewService) Create(ctx context.Context, params CreateParams) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "movie_id", params.MovieID, "critic_id", params.CriticID)
	if err := s.ensureMovie(ctx, op, params.MovieID); err != nil {
		return nil, err
	}
	review, err := s.storage.Insert(ctx, &models.Review{
		Stars:         params.Stars,
		Text:          params.Text,
		Spoilers:      params.Spoilers,
		Recomendation: params.Recomendation,
		MovieID:       params.MovieID,
		CriticID:      params.CriticID,
	})
	if err != nil {
		// the movie may have been deleted in between
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie or critic gone before insert")
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("review created", "id", review.ID)
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	const op = "reviews.ReviewService.Get"
	review, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Info("review not found", "op", op, "id", id)
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return review, nil
}

// Count and List take movieID 0 to mean reviews of every movie.

func (s *ReviewService) Count(ctx context.Context, movieID int64) (int, error) {
	const op = "reviews.ReviewService.Count"
	if movieID != 0 {
		if err := s.ensureMovie(ctx, op, movieID); err != nil {
			return 0, err
		}
	}
	count, err := s.storage.Count(ctx, movieID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func (s *ReviewService) List(ctx context.Context, movieID int64, f filters.Filters) ([]models.Review, error) {
	reviews, err := s.storage.List(ctx, movieID, f)
	if err != nil {
		return nil, fmt.Errorf("reviews.ReviewService.List: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return ErrReviewNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("review deleted")
	return nil
}

func (s *ReviewService) ensureMovie(ctx context.Context, op string, movieID int64) error {
	if _, err := s.movies.Get(ctx, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Info("movie not found", "op", op, "movie_id", movieID)
			return ErrMovieNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
