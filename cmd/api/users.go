package main

import (
	"errors"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/domain/permissions"
	"moviereviews/proj/internal/lib/paginator"
	"moviereviews/proj/internal/lib/validator"
	"moviereviews/proj/internal/services/auth"
	"net/http"
)

type registerRequest struct {
	FirstName *string `json:"first_name" validate:"required,notblank,max=150"`
	LastName  *string `json:"last_name" validate:"required,notblank,max=150"`
	Email     *string `json:"email" validate:"required,notblank,email,max=254"`
	Password  *string `json:"password" validate:"required,notblank,max=72"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	if err := app.authorize(w, r, permissions.ActionCreate, permissions.ResourceUser, 0); err != nil {
		return
	}
	var req registerRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	user, err := app.services.Auth.Signup(r.Context(), auth.SignupParams{
		Email:     *req.Email,
		Password:  *req.Password,
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			app.Http.ValidationError(w, r, validator.Errors{"email": {err.Error()}})
		default:
			app.Http.ServerError(w, r, err)
		}
		return
	}
	app.Http.Created(w, r, user)
}

type loginRequest struct {
	Email    *string `json:"email" validate:"required,notblank"`
	Password *string `json:"password" validate:"required,notblank"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	token, err := app.services.Auth.Login(r.Context(), *req.Email, *req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			app.Http.Unauthorized(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err)
		}
		return
	}
	app.Http.Ok(w, r, envelop{"token": token})
}

func (app *Application) listUsers(w http.ResponseWriter, r *http.Request) {
	if err := app.authorize(w, r, permissions.ActionList, permissions.ResourceUser, 0); err != nil {
		return
	}
	page, err := fetchPage[models.User](app, r, paginator.SourceFuncs[models.User]{
		CountFunc: app.services.Auth.CountUsers,
		FetchFunc: app.services.Auth.ListUsers,
	})
	if err != nil {
		app.paginationError(w, r, err)
		return
	}
	app.Http.Ok(w, r, page)
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.authorize(w, r, permissions.ActionRead, permissions.ResourceUser, 0); err != nil {
		return
	}
	user, err := app.services.Auth.GetUser(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			app.Http.NotFound(w, r)
		default:
			app.Http.ServerError(w, r, err)
		}
		return
	}
	app.Http.Ok(w, r, user)
}
