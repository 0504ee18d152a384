package main

import (
	"context"
	"errors"
	"moviereviews/proj/internal/domain/filters"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/domain/permissions"
	"moviereviews/proj/internal/lib/paginator"
	"moviereviews/proj/internal/services/reviews"
	"net/http"
)

type createReviewRequest struct {
	Stars         *int    `json:"stars" validate:"required,gte=1,lte=10"`
	Review        *string `json:"review" validate:"required,notblank,max=2000"`
	Spoilers      *bool   `json:"spoilers"`
	Recomendation *string `json:"recomendation" validate:"omitempty,recomendation"`
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.authorize(w, r, permissions.ActionCreate, permissions.ResourceReview, 0); err != nil {
		return
	}
	var req createReviewRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	params := reviews.CreateParams{
		MovieID:       movieID,
		CriticID:      principalFromContext(r.Context()).User.ID,
		Stars:         *req.Stars,
		Text:          *req.Review,
		Recomendation: req.Recomendation,
	}
	if req.Spoilers != nil {
		params.Spoilers = *req.Spoilers
	}
	review, err := app.services.Reviews.Create(r.Context(), params)
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Created(w, r, review)
}

// reviewsSource lists the reviews of one movie, or of every movie when
// movieID is 0.
func (app *Application) reviewsSource(movieID int64) paginator.Source[models.Review] {
	return paginator.SourceFuncs[models.Review]{
		CountFunc: func(ctx context.Context) (int, error) {
			return app.services.Reviews.Count(ctx, movieID)
		},
		FetchFunc: func(ctx context.Context, f filters.Filters) ([]models.Review, error) {
			return app.services.Reviews.List(ctx, movieID, f)
		},
	}
}

func (app *Application) listReviews(w http.ResponseWriter, r *http.Request) {
	app.writeReviewsPage(w, r, 0)
}

func (app *Application) listMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	app.writeReviewsPage(w, r, movieID)
}

func (app *Application) writeReviewsPage(w http.ResponseWriter, r *http.Request, movieID int64) {
	if err := app.authorize(w, r, permissions.ActionList, permissions.ResourceReview, 0); err != nil {
		return
	}
	page, err := fetchPage(app, r, app.reviewsSource(movieID))
	if err != nil {
		if errors.Is(err, reviews.ErrMovieNotFound) {
			app.Http.NotFound(w, r)
			return
		}
		app.paginationError(w, r, err)
		return
	}
	app.Http.Ok(w, r, page)
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.authorize(w, r, permissions.ActionRead, permissions.ResourceReview, 0); err != nil {
		return
	}
	review, err := app.services.Reviews.Get(r.Context(), id)
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, review)
}

// deleteReview removes a review on behalf of its critic or an admin. Anyone
// else gets the same empty 204 while the review is kept.
func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	// without an owner the check can only reject anonymous requests
	err := app.authorize(w, r, permissions.ActionDelete, permissions.ResourceReview, 0)
	if err != nil && !errors.Is(err, permissions.ErrSilentlyRefused) {
		return
	}
	review, err := app.services.Reviews.Get(r.Context(), id)
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	if err := app.authorize(w, r, permissions.ActionDelete, permissions.ResourceReview, review.CriticID); err != nil {
		if errors.Is(err, permissions.ErrSilentlyRefused) {
			app.Http.setupLogPerReq(r).Info("review delete refused", "review_id", id)
			app.Http.NoContent(w, r)
		}
		return
	}
	if err := app.services.Reviews.Delete(r.Context(), id); err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) reviewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrReviewNotFound), errors.Is(err, reviews.ErrMovieNotFound):
		app.Http.NotFound(w, r)
	default:
		app.Http.ServerError(w, r, err)
	}
}
