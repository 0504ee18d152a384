package main

import (
	"encoding/json"
	"errors"
	"io"
	"moviereviews/proj/internal/domain/permissions"
	"moviereviews/proj/internal/lib/paginator"
	"moviereviews/proj/internal/lib/validator"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1_048_576 // 1MB

// extractIDParam reads the {id} url param. Routes only match digits, so a
// failure here means the id does not fit an int64 and cannot exist.
func (app *Application) extractIDParam(w http.ResponseWriter, r *http.Request) (id int64, extracted bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		app.Http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// readJSON decodes the request body into dst. An empty body leaves dst
// untouched so that every required field gets reported by validation. Fields
// holding a value of the wrong type come back as validation errors instead of
// failing the whole decode.
func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) (validator.Errors, error) {
	src := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	var body json.RawMessage
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("body must only contain a single JSON value")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, err
		}
		errs := make(validator.Errors)
		errs.Add("non_field_errors", validator.TypeErrorMsg(reflect.TypeOf(fields), typeErr.Value))
		return errs, nil
	}
	return validator.DecodeFields(fields, dst)
}

// decodeAndValidate reads the body into dst and validates it, answering the
// request itself when either step fails.
func (app *Application) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	typeErrs, err := app.readJSON(w, r, dst)
	if err != nil {
		app.Http.BadRequest(w, r, "JSON parse error - "+err.Error())
		return false
	}
	if typeErrs["non_field_errors"] != nil {
		app.Http.ValidationError(w, r, typeErrs)
		return false
	}
	errs := validator.ValidateStruct(app.validator, dst)
	if errs == nil && typeErrs == nil {
		return true
	}
	if errs == nil {
		errs = make(validator.Errors)
	}
	errs.Merge(typeErrs)
	app.Http.ValidationError(w, r, errs)
	return false
}

type pageQuery struct {
	Page int `schema:"page"`
}

func (app *Application) readPage(r *http.Request) (int, error) {
	q := pageQuery{Page: 1}
	if err := app.decoder.Decode(&q, r.URL.Query()); err != nil {
		return 0, paginator.ErrPageOutOfRange
	}
	return q.Page, nil
}

// pageURL is the absolute url of the current request, the base of the
// next/previous links.
func pageURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return &url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}

// fetchPage reads the page query param and fetches that page of src.
func fetchPage[T any](app *Application, r *http.Request, src paginator.Source[T]) (*paginator.Page[T], error) {
	page, err := app.readPage(r)
	if err != nil {
		return nil, err
	}
	return paginator.Paginate(r.Context(), src, page, pageURL(r))
}

// paginationError answers a failed page fetch.
func (app *Application) paginationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, paginator.ErrPageOutOfRange):
		app.Http.BadRequest(w, r, "Invalid page.")
	default:
		app.Http.ServerError(w, r, err)
	}
}

// authorize checks the request principal against the permission table and
// answers the request when access is denied. ownerID is only used by ownership
// rules.
func (app *Application) authorize(
	w http.ResponseWriter,
	r *http.Request,
	action permissions.Action,
	resource permissions.Resource,
	ownerID int64,
) error {
	principal := principalFromContext(r.Context())
	err := permissions.Check(principal, action, resource, ownerID)
	switch {
	case err == nil, errors.Is(err, permissions.ErrSilentlyRefused):
	case errors.Is(err, permissions.ErrInvalidToken):
		app.Http.Unauthorized(w, r, "Invalid token.")
	case errors.Is(err, permissions.ErrUnauthenticated):
		app.Http.Unauthorized(w, r, "Authentication credentials were not provided.")
	case errors.Is(err, permissions.ErrForbidden):
		app.Http.Forbidden(w, r)
	default:
		app.Http.ServerError(w, r, err)
	}
	return err
}
