// Package storagetest provides an in-memory implementation of the storage
// models for tests. It enforces the same invariants as the postgres schema:
// unique emails, unique genre names, one token per user, existing movie and
// critic for reviews and cascading movie deletes.
package storagetest

import (
	"context"
	"moviereviews/proj/internal/domain/filters"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/storage"
	"slices"
	"sync"
	"time"
)

type db struct {
	mu          sync.Mutex
	lastID      map[string]int64
	users       []models.User
	tokens      []models.Token
	genres      []models.Genre
	movies      []models.Movie
	movieGenres map[int64][]int64
	reviews     []models.Review
}

func (d *db) nextID(table string) int64 {
	d.lastID[table]++
	return d.lastID[table]
}

type Store struct {
	User   *UserStore
	Token  *TokenStore
	Movie  *MovieStore
	Review *ReviewStore
	db     *db
}

func New() *Store {
	d := &db{
		lastID:      make(map[string]int64),
		movieGenres: make(map[int64][]int64),
	}
	return &Store{
		User:   &UserStore{d},
		Token:  &TokenStore{d},
		Movie:  &MovieStore{d},
		Review: &ReviewStore{d},
		db:     d,
	}
}

// ReviewExists reports whether a review with id is stored.
func (s *Store) ReviewExists(id int64) bool {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return slices.ContainsFunc(s.db.reviews, func(r models.Review) bool { return r.ID == id })
}

// MovieExists reports whether a movie with id is stored.
func (s *Store) MovieExists(id int64) bool {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return slices.ContainsFunc(s.db.movies, func(m models.Movie) bool { return m.ID == id })
}

// GenresCount returns the number of distinct stored genres.
func (s *Store) GenresCount() int {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return len(s.db.genres)
}

func page[T any](items []T, f filters.Filters) []T {
	start := min(f.Offset(), len(items))
	end := min(start+f.Limit(), len(items))
	return slices.Clone(items[start:end])
}

type UserStore struct {
	db *db
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if slices.ContainsFunc(s.db.users, func(u models.User) bool { return u.Email == user.Email }) {
		return nil, storage.ErrConflict
	}
	created := *user
	created.ID = s.db.nextID("users")
	now := time.Now().UTC()
	created.DateJoined = now
	created.UpdatedAt = now
	s.db.users = append(s.db.users, created)
	return &created, nil
}

func (s *UserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.findUser(func(u models.User) bool { return u.ID == id })
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.findUser(func(u models.User) bool { return u.Email == email })
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return len(s.db.users), nil
}

func (s *UserStore) List(ctx context.Context, f filters.Filters) ([]models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return page(s.db.users, f), nil
}

func (d *db) findUser(match func(models.User) bool) (*models.User, error) {
	i := slices.IndexFunc(d.users, match)
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	user := d.users[i]
	return &user, nil
}

type TokenStore struct {
	db *db
}

func (s *TokenStore) GetOrCreate(ctx context.Context, userID int64, key string) (*models.Token, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if i := slices.IndexFunc(s.db.tokens, func(t models.Token) bool { return t.UserID == userID }); i >= 0 {
		token := s.db.tokens[i]
		return &token, nil
	}
	if _, err := s.db.findUser(func(u models.User) bool { return u.ID == userID }); err != nil {
		return nil, err
	}
	token := models.Token{Key: key, UserID: userID, CreatedAt: time.Now().UTC()}
	s.db.tokens = append(s.db.tokens, token)
	return &token, nil
}

func (s *TokenStore) GetUser(ctx context.Context, key string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := slices.IndexFunc(s.db.tokens, func(t models.Token) bool { return t.Key == key })
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	userID := s.db.tokens[i].UserID
	return s.db.findUser(func(u models.User) bool { return u.ID == userID })
}

type MovieStore struct {
	db *db
}

func (s *MovieStore) Insert(ctx context.Context, movie *models.Movie, genres []string) (*models.Movie, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	created := *movie
	created.ID = s.db.nextID("movies")
	created.CreatedAt = time.Now().UTC()
	created.Genres = nil
	s.db.movies = append(s.db.movies, created)
	s.db.linkGenres(created.ID, genres)
	return s.db.withGenres(created), nil
}

func (s *MovieStore) Get(ctx context.Context, id int64) (*models.Movie, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := s.db.movieIndex(id)
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	return s.db.withGenres(s.db.movies[i]), nil
}

func (s *MovieStore) Count(ctx context.Context) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return len(s.db.movies), nil
}

func (s *MovieStore) List(ctx context.Context, f filters.Filters) ([]models.Movie, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	movies := page(s.db.movies, f)
	for i := range movies {
		movies[i] = *s.db.withGenres(movies[i])
	}
	return movies, nil
}

func (s *MovieStore) Update(ctx context.Context, id int64, upd models.MovieUpdate) (*models.Movie, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := s.db.movieIndex(id)
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	movie := &s.db.movies[i]
	if upd.Title != nil {
		movie.Title = *upd.Title
	}
	if upd.Duration != nil {
		movie.Duration = *upd.Duration
	}
	if upd.Premiere != nil {
		movie.Premiere = *upd.Premiere
	}
	if upd.Classification != nil {
		movie.Classification = *upd.Classification
	}
	if upd.Synopsis != nil {
		movie.Synopsis = *upd.Synopsis
	}
	if upd.Genres != nil {
		delete(s.db.movieGenres, id)
		s.db.linkGenres(id, upd.Genres)
	}
	return s.db.withGenres(*movie), nil
}

func (s *MovieStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := s.db.movieIndex(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	s.db.movies = slices.Delete(s.db.movies, i, i+1)
	delete(s.db.movieGenres, id)
	s.db.reviews = slices.DeleteFunc(s.db.reviews, func(r models.Review) bool { return r.MovieID == id })
	return nil
}

func (d *db) movieIndex(id int64) int {
	return slices.IndexFunc(d.movies, func(m models.Movie) bool { return m.ID == id })
}

func (d *db) findOrInsertGenre(name string) models.Genre {
	if i := slices.IndexFunc(d.genres, func(g models.Genre) bool { return g.Name == name }); i >= 0 {
		return d.genres[i]
	}
	genre := models.Genre{ID: d.nextID("genres"), Name: name}
	d.genres = append(d.genres, genre)
	return genre
}

func (d *db) linkGenres(movieID int64, names []string) {
	for _, name := range names {
		genre := d.findOrInsertGenre(name)
		if !slices.Contains(d.movieGenres[movieID], genre.ID) {
			d.movieGenres[movieID] = append(d.movieGenres[movieID], genre.ID)
		}
	}
	slices.Sort(d.movieGenres[movieID])
}

func (d *db) withGenres(movie models.Movie) *models.Movie {
	movie.Genres = []models.Genre{}
	for _, genreID := range d.movieGenres[movie.ID] {
		i := slices.IndexFunc(d.genres, func(g models.Genre) bool { return g.ID == genreID })
		movie.Genres = append(movie.Genres, d.genres[i])
	}
	return &movie
}

type ReviewStore struct {
	db *db
}

func (s *ReviewStore) Insert(ctx context.Context, review *models.Review) (*models.Review, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.movieIndex(review.MovieID) < 0 {
		return nil, storage.ErrNotFound
	}
	critic, err := s.db.findUser(func(u models.User) bool { return u.ID == review.CriticID })
	if err != nil {
		return nil, err
	}
	created := *review
	created.ID = s.db.nextID("reviews")
	created.CreatedAt = time.Now().UTC()
	created.Critic = models.Critic{ID: critic.ID, FirstName: critic.FirstName, LastName: critic.LastName}
	s.db.reviews = append(s.db.reviews, created)
	return &created, nil
}

func (s *ReviewStore) Get(ctx context.Context, id int64) (*models.Review, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := slices.IndexFunc(s.db.reviews, func(r models.Review) bool { return r.ID == id })
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	review := s.db.reviews[i]
	return &review, nil
}

func (d *db) movieReviews(movieID int64) []models.Review {
	if movieID == 0 {
		return d.reviews
	}
	var reviews []models.Review
	for _, r := range d.reviews {
		if r.MovieID == movieID {
			reviews = append(reviews, r)
		}
	}
	return reviews
}

func (s *ReviewStore) Count(ctx context.Context, movieID int64) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return len(s.db.movieReviews(movieID)), nil
}

func (s *ReviewStore) List(ctx context.Context, movieID int64, f filters.Filters) ([]models.Review, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return page(s.db.movieReviews(movieID), f), nil
}

func (s *ReviewStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := slices.IndexFunc(s.db.reviews, func(r models.Review) bool { return r.ID == id })
	if i < 0 {
		return storage.ErrNotFound
	}
	s.db.reviews = slices.Delete(s.db.reviews, i, i+1)
	return nil
}
