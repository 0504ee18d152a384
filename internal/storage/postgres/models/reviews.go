package models

import (
	"context"
	"errors"
	"moviereviews/proj/internal/domain/filters"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/storage"
	"moviereviews/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewSelect = `SELECT r.id, r.stars, r.review, r.spoilers, r.recomendation, r.movie_id, r.created_at,
	u.id, u.first_name, u.last_name
	FROM reviews r JOIN users u ON u.id = r.critic_id`

type ReviewModel struct {
	DB *pgxpool.Pool
}

func scanReview(row pgx.CollectableRow) (models.Review, error) {
	var r models.Review
	err := row.Scan(
		&r.ID,
		&r.Stars,
		&r.Text,
		&r.Spoilers,
		&r.Recomendation,
		&r.MovieID,
		&r.CreatedAt,
		&r.Critic.ID,
		&r.Critic.FirstName,
		&r.Critic.LastName,
	)
	r.CriticID = r.Critic.ID
	return r, err
}

// Insert stores review. A missing movie or critic yields storage.ErrNotFound.
func (m *ReviewModel) Insert(ctx context.Context, review *models.Review) (*models.Review, error) {
	var id int64
	err := m.DB.QueryRow(
		ctx,
		`INSERT INTO reviews (stars, review, spoilers, recomendation, movie_id, critic_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		review.Stars,
		review.Text,
		review.Spoilers,
		review.Recomendation,
		review.MovieID,
		review.CriticID,
	).Scan(&id)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return m.Get(ctx, id)
}

func (m *ReviewModel) Get(ctx context.Context, id int64) (*models.Review, error) {
	rows, _ := m.DB.Query(ctx, reviewSelect+` WHERE r.id = $1`, id)
	review, err := pgx.CollectOneRow(rows, scanReview)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// Count returns the number of reviews of movieID, or of all movies when movieID is 0.
func (m *ReviewModel) Count(ctx context.Context, movieID int64) (int, error) {
	var count int
	err := m.DB.QueryRow(
		ctx,
		`SELECT count(*) FROM reviews WHERE ($1::bigint = 0 OR movie_id = $1)`,
		movieID,
	).Scan(&count)
	return count, err
}

func (m *ReviewModel) List(ctx context.Context, movieID int64, f filters.Filters) ([]models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		reviewSelect+` WHERE ($1::bigint = 0 OR r.movie_id = $1) ORDER BY r.id ASC LIMIT $2 OFFSET $3`,
		movieID,
		f.Limit(),
		f.Offset(),
	)
	return pgx.CollectRows(rows, scanReview)
}

func (m *ReviewModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
