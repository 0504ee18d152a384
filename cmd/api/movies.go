package main

import (
	"errors"
	"moviereviews/proj/internal/domain/fields"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/domain/permissions"
	"moviereviews/proj/internal/lib/paginator"
	"moviereviews/proj/internal/services/movies"
	"net/http"
)

type genreRequest struct {
	Name *string `json:"name" validate:"required,notblank,max=127"`
}

type createMovieRequest struct {
	Title          *string        `json:"title" validate:"required,notblank,max=127"`
	Duration       *string        `json:"duration" validate:"required,notblank,max=10"`
	Premiere       *string        `json:"premiere" validate:"required,datetime=2006-01-02"`
	Classification *int32         `json:"classification" validate:"required"`
	Synopsis       *string        `json:"synopsis" validate:"required,notblank,max=2000"`
	Genres         []genreRequest `json:"genres" validate:"required,dive"`
}

type updateMovieRequest struct {
	Title          *string        `json:"title" validate:"omitempty,notblank,max=127"`
	Duration       *string        `json:"duration" validate:"omitempty,notblank,max=10"`
	Premiere       *string        `json:"premiere" validate:"omitempty,datetime=2006-01-02"`
	Classification *int32         `json:"classification"`
	Synopsis       *string        `json:"synopsis" validate:"omitempty,notblank,max=2000"`
	Genres         []genreRequest `json:"genres" validate:"omitempty,dive"`
}

func genreNames(genres []genreRequest) []string {
	if genres == nil {
		return nil
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, *g.Name)
	}
	return names
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	if err := app.authorize(w, r, permissions.ActionCreate, permissions.ResourceMovie, 0); err != nil {
		return
	}
	var req createMovieRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	premiere, err := fields.ParseDate(*req.Premiere)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	movie, err := app.services.Movies.Create(r.Context(), &models.Movie{
		Title:          *req.Title,
		Duration:       *req.Duration,
		Premiere:       premiere,
		Classification: *req.Classification,
		Synopsis:       *req.Synopsis,
	}, genreNames(req.Genres))
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Created(w, r, movie)
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	if err := app.authorize(w, r, permissions.ActionList, permissions.ResourceMovie, 0); err != nil {
		return
	}
	page, err := fetchPage[models.Movie](app, r, paginator.SourceFuncs[models.Movie]{
		CountFunc: app.services.Movies.Count,
		FetchFunc: app.services.Movies.List,
	})
	if err != nil {
		app.paginationError(w, r, err)
		return
	}
	app.Http.Ok(w, r, page)
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.authorize(w, r, permissions.ActionRead, permissions.ResourceMovie, 0); err != nil {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		app.movieError(w, r, err)
		return
	}
	app.Http.Ok(w, r, movie)
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.authorize(w, r, permissions.ActionUpdate, permissions.ResourceMovie, 0); err != nil {
		return
	}
	if _, err := app.services.Movies.Get(r.Context(), id); err != nil {
		app.movieError(w, r, err)
		return
	}
	var req updateMovieRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	upd := models.MovieUpdate{
		Title:          req.Title,
		Duration:       req.Duration,
		Classification: req.Classification,
		Synopsis:       req.Synopsis,
		Genres:         genreNames(req.Genres),
	}
	if req.Premiere != nil {
		premiere, err := fields.ParseDate(*req.Premiere)
		if err != nil {
			app.Http.ServerError(w, r, err)
			return
		}
		upd.Premiere = &premiere
	}
	movie, err := app.services.Movies.Update(r.Context(), id, upd)
	if err != nil {
		app.movieError(w, r, err)
		return
	}
	app.Http.Ok(w, r, movie)
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.authorize(w, r, permissions.ActionDelete, permissions.ResourceMovie, 0); err != nil {
		return
	}
	if err := app.services.Movies.Delete(r.Context(), id); err != nil {
		app.movieError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) movieError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, movies.ErrMovieNotFound):
		app.Http.NotFound(w, r)
	default:
		app.Http.ServerError(w, r, err)
	}
}
