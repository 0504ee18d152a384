package models

import (
	"cmp"
	"context"
	"errors"
	"moviereviews/proj/internal/domain/filters"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/storage"
	"moviereviews/proj/internal/storage/postgres"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movieColumns = `id, title, duration, premiere, classification, synopsis, created_at`

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type MovieModel struct {
	DB *pgxpool.Pool
}

// Insert stores movie and links it to genres, creating the genres that do not
// exist yet. Everything happens in one transaction.
func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie, genres []string) (*models.Movie, error) {
	var created models.Movie
	err := pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		rows, _ := tx.Query(
			ctx,
			`INSERT INTO movies (title, duration, premiere, classification, synopsis)
			VALUES ($1, $2, $3, $4, $5) RETURNING `+movieColumns,
			movie.Title,
			movie.Duration,
			movie.Premiere,
			movie.Classification,
			movie.Synopsis,
		)
		var err error
		created, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
		if err != nil {
			return err
		}
		created.Genres, err = linkGenres(ctx, tx, created.ID, genres)
		return err
	})
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return &created, nil
}

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, _ := m.DB.Query(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	movies := []models.Movie{movie}
	if err := attachGenres(ctx, m.DB, movies); err != nil {
		return nil, err
	}
	return &movies[0], nil
}

func (m *MovieModel) Count(ctx context.Context) (int, error) {
	var count int
	err := m.DB.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&count)
	return count, err
}

func (m *MovieModel) List(ctx context.Context, f filters.Filters) ([]models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY id ASC LIMIT $1 OFFSET $2`,
		f.Limit(),
		f.Offset(),
	)
	movies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	if err := attachGenres(ctx, m.DB, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Update applies the non-nil fields of upd. A non-nil upd.Genres replaces the
// genre links of the movie.
func (m *MovieModel) Update(ctx context.Context, id int64, upd models.MovieUpdate) (*models.Movie, error) {
	var updated models.Movie
	err := pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		rows, _ := tx.Query(
			ctx,
			`UPDATE movies SET
				title = COALESCE($1, title),
				duration = COALESCE($2, duration),
				premiere = COALESCE($3, premiere),
				classification = COALESCE($4, classification),
				synopsis = COALESCE($5, synopsis)
			WHERE id = $6 RETURNING `+movieColumns,
			upd.Title,
			upd.Duration,
			upd.Premiere,
			upd.Classification,
			upd.Synopsis,
			id,
		)
		var err error
		updated, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}
			return err
		}
		if upd.Genres == nil {
			movies := []models.Movie{updated}
			if err := attachGenres(ctx, tx, movies); err != nil {
				return err
			}
			updated = movies[0]
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM movies_genres WHERE movie_id = $1`, id); err != nil {
			return err
		}
		updated.Genres, err = linkGenres(ctx, tx, id, upd.Genres)
		return err
	})
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return &updated, nil
}

// Delete removes the movie, its reviews and genre links go with it (ON DELETE CASCADE).
func (m *MovieModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// findOrInsertGenre returns the genre called name, creating it if needed. The
// unique index on genres.name keeps concurrent inserts from duplicating it.
func findOrInsertGenre(ctx context.Context, tx pgx.Tx, name string) (models.Genre, error) {
	if _, err := tx.Exec(ctx, `INSERT INTO genres (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
		return models.Genre{}, err
	}
	rows, _ := tx.Query(ctx, `SELECT id, name FROM genres WHERE name = $1`, name)
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
}

func linkGenres(ctx context.Context, tx pgx.Tx, movieID int64, names []string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(names))
	for _, name := range names {
		genre, err := findOrInsertGenre(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if slices.ContainsFunc(genres, func(g models.Genre) bool { return g.ID == genre.ID }) {
			continue
		}
		_, err = tx.Exec(
			ctx,
			`INSERT INTO movies_genres (movie_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			movieID,
			genre.ID,
		)
		if err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	slices.SortFunc(genres, func(a, b models.Genre) int { return cmp.Compare(a.ID, b.ID) })
	return genres, nil
}

func attachGenres(ctx context.Context, q querier, movies []models.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(movies))
	byID := make(map[int64]int, len(movies))
	for i := range movies {
		movies[i].Genres = []models.Genre{}
		ids = append(ids, movies[i].ID)
		byID[movies[i].ID] = i
	}
	rows, _ := q.Query(
		ctx,
		`SELECT mg.movie_id, g.id, g.name FROM movies_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = ANY($1) ORDER BY g.id ASC`,
		ids,
	)
	type row struct {
		MovieID int64 `db:"movie_id"`
		models.Genre
	}
	genreRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return err
	}
	for _, r := range genreRows {
		i := byID[r.MovieID]
		movies[i].Genres = append(movies[i].Genres, r.Genre)
	}
	return nil
}
