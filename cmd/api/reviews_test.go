package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewPayload() map[string]any {
	return map[string]any{
		"stars":         8,
		"review":        "Tense and beautifully shot.",
		"spoilers":      false,
		"recomendation": "Must Watch",
	}
}

func TestCreateReview(t *testing.T) {
	app := newTestApplication(t, nil)
	critic, token := app.seedUser(t, "critic@example.com", false)
	movie := app.seedMovie(t, "Heat", "Crime")
	target := fmt.Sprintf("/api/movies/%d/reviews/", movie.ID)

	rec := app.do(t, http.MethodPost, target, reviewPayload(), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, float64(movie.ID), body["movie_id"])
	assert.Equal(t, "Must Watch", body["recomendation"])
	criticBody := body["critic"].(map[string]any)
	assert.Equal(t, float64(critic.ID), criticBody["id"])
	assert.Equal(t, critic.FirstName, criticBody["first_name"])

	t.Run("recomendation is optional", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, target, map[string]any{"stars": 3, "review": "meh"}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Nil(t, body["recomendation"])
		assert.Equal(t, false, body["spoilers"])
	})
	t.Run("anonymous", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, target, reviewPayload(), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail": "Authentication credentials were not provided."}`, rec.Body.String())
	})
	t.Run("unknown movie", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/movies/999/reviews/", reviewPayload(), token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateReviewValidation(t *testing.T) {
	app := newTestApplication(t, nil)
	_, token := app.seedUser(t, "critic@example.com", false)
	movie := app.seedMovie(t, "Heat", "Crime")
	target := fmt.Sprintf("/api/movies/%d/reviews/", movie.ID)

	t.Run("missing fields", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, target, nil, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"stars": ["This field is required."], "review": ["This field is required."]}`, rec.Body.String())
	})

	testCases := []struct {
		name     string
		field    string
		value    any
		expected string
	}{
		{"stars too low", "stars", 0, "Ensure this value is greater than or equal to 1."},
		{"stars too high", "stars", 100, "Ensure this value is less than or equal to 10."},
		{"bad recomendation", "recomendation", "invalid recomendation", "invalid recomendation is not a valid choice."},
		{"spoilers type", "spoilers", "yes", "Must be a valid boolean."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := reviewPayload()
			payload[tc.field] = tc.value
			rec := app.do(t, http.MethodPost, target, payload, token)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, map[string][]string{tc.field: {tc.expected}}, decodeBody[map[string][]string](t, rec))
		})
	}

	t.Run("wrong types with missing fields", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, target, map[string]any{"stars": "x", "spoilers": "yes"}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{
			"stars": ["A valid integer is required."],
			"spoilers": ["Must be a valid boolean."],
			"review": ["This field is required."]
		}`, rec.Body.String())
	})
}

func TestDeleteReview(t *testing.T) {
	app := newTestApplication(t, nil)
	owner, ownerToken := app.seedUser(t, "owner@example.com", false)
	_, otherToken := app.seedUser(t, "other@example.com", false)
	_, adminToken := app.seedUser(t, "admin@example.com", true)
	movie := app.seedMovie(t, "Heat", "Crime")
	target := func(id int64) string { return fmt.Sprintf("/api/reviews/%d/", id) }

	t.Run("owner", func(t *testing.T) {
		review := app.seedReview(t, movie.ID, owner.ID)
		rec := app.do(t, http.MethodDelete, target(review.ID), nil, ownerToken)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, app.store.ReviewExists(review.ID))
	})
	t.Run("not owner", func(t *testing.T) {
		review := app.seedReview(t, movie.ID, owner.ID)
		rec := app.do(t, http.MethodDelete, target(review.ID), nil, otherToken)
		assert.Empty(t, rec.Body.String())
		assert.True(t, app.store.ReviewExists(review.ID))
	})
	t.Run("admin", func(t *testing.T) {
		review := app.seedReview(t, movie.ID, owner.ID)
		rec := app.do(t, http.MethodDelete, target(review.ID), nil, adminToken)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, app.store.ReviewExists(review.ID))
	})
	t.Run("anonymous", func(t *testing.T) {
		review := app.seedReview(t, movie.ID, owner.ID)
		rec := app.do(t, http.MethodDelete, target(review.ID), nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.True(t, app.store.ReviewExists(review.ID))
	})
	t.Run("unknown", func(t *testing.T) {
		rec := app.do(t, http.MethodDelete, target(999), nil, adminToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListReviewsPagination(t *testing.T) {
	app := newTestApplication(t, nil)
	critic, _ := app.seedUser(t, "critic@example.com", false)
	movie := app.seedMovie(t, "Heat", "Crime")
	other := app.seedMovie(t, "Ronin", "Action")
	for i := 0; i < 4; i++ {
		app.seedReview(t, movie.ID, critic.ID)
	}
	app.seedReview(t, other.ID, critic.ID)

	testCases := []struct {
		name   string
		target string
		count  int
	}{
		{"movie reviews", fmt.Sprintf("/api/movies/%d/reviews/", movie.ID), 4},
		{"all reviews", "/api/reviews/", 5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, tc.target, nil, "")
			require.Equal(t, http.StatusOK, rec.Code)
			first := decodeBody[listResponse[map[string]any]](t, rec)
			assert.Equal(t, tc.count, first.Count)
			assert.Len(t, first.Results, 3)
			require.NotNil(t, first.Next)
			assert.Contains(t, *first.Next, "/?page=2")

			rec = app.do(t, http.MethodGet, *first.Next, nil, "")
			require.Equal(t, http.StatusOK, rec.Code)
			second := decodeBody[listResponse[map[string]any]](t, rec)
			assert.Len(t, second.Results, tc.count-3)
			assert.Nil(t, second.Next)
		})
	}

	t.Run("unknown movie", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/movies/999/reviews/", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	for _, target := range []string{
		fmt.Sprintf("/api/movies/%d/reviews/?page=3", movie.ID),
		"/api/reviews/?page=0",
		"/api/reviews/?page=abc",
	} {
		t.Run("invalid page "+target, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, target, nil, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"detail": "Invalid page."}`, rec.Body.String())
		})
	}
}

func TestGetReview(t *testing.T) {
	app := newTestApplication(t, nil)
	critic, _ := app.seedUser(t, "critic@example.com", false)
	movie := app.seedMovie(t, "Heat", "Crime")
	review := app.seedReview(t, movie.ID, critic.ID)
	target := fmt.Sprintf("/api/reviews/%d/", review.ID)

	first := app.do(t, http.MethodGet, target, nil, "")
	require.Equal(t, http.StatusOK, first.Code)
	second := app.do(t, http.MethodGet, target, nil, "")
	assert.Equal(t, first.Body.String(), second.Body.String())
	body := decodeBody[map[string]any](t, first)
	for _, field := range []string{"id", "stars", "review", "spoilers", "recomendation", "movie_id", "critic"} {
		assert.Contains(t, body, field)
	}

	rec := app.do(t, http.MethodGet, "/api/reviews/999/", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
