package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"moviereviews/proj/internal/config"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/services"
	"moviereviews/proj/internal/services/auth"
	"moviereviews/proj/internal/storage/storagetest"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testApplication struct {
	*Application
	store   *storagetest.Store
	handler http.Handler
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth:    config.Auth{BcryptCost: bcrypt.MinCost},
		Limiter: config.Limiter{Enabled: false, Rps: 2, Burst: 2},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *testApplication {
	t.Helper()
	if cfg == nil {
		cfg = newTestConfig()
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storagetest.New()
	app := NewApplication(cfg, log, services.New(log, cfg, services.Storage{
		Users:   store.User,
		Tokens:  store.Token,
		Movies:  store.Movie,
		Reviews: store.Review,
	}))
	return &testApplication{Application: app, store: store, handler: app.routes()}
}

// do sends a request through the full router. A non-nil body is encoded as
// json unless it already is a string.
func (app *testApplication) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	return rec
}

// seedUser registers a user and logs them in, returning the user and token.
func (app *testApplication) seedUser(t *testing.T, email string, superuser bool) (*models.User, string) {
	t.Helper()
	ctx := context.Background()
	params := auth.SignupParams{Email: email, Password: "secret-password", FirstName: "Test", LastName: "User"}
	var (
		user *models.User
		err  error
	)
	if superuser {
		user, err = app.services.Auth.CreateSuperuser(ctx, params)
	} else {
		user, err = app.services.Auth.Signup(ctx, params)
	}
	require.NoError(t, err)
	token, err := app.services.Auth.Login(ctx, email, params.Password)
	require.NoError(t, err)
	return user, token
}

func (app *testApplication) seedMovie(t *testing.T, title string, genres ...string) *models.Movie {
	t.Helper()
	movie, err := app.services.Movies.Create(context.Background(), &models.Movie{
		Title:          title,
		Duration:       "120m",
		Classification: 12,
		Synopsis:       "synopsis",
	}, genres)
	require.NoError(t, err)
	return movie
}

func (app *testApplication) seedReview(t *testing.T, movieID, criticID int64) *models.Review {
	t.Helper()
	review, err := app.store.Review.Insert(context.Background(), &models.Review{
		Stars:    7,
		Text:     "solid",
		MovieID:  movieID,
		CriticID: criticID,
	})
	require.NoError(t, err)
	return review
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type listResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
