package main

import (
	"fmt"
	"log/slog"
	"moviereviews/proj/internal/config"
	"moviereviews/proj/internal/lib/validator"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Http struct {
	log *slog.Logger
	cfg *config.Config
}

type envelop map[string]any

func (h *Http) setupLogPerReq(r *http.Request) *slog.Logger {
	return h.log.With(
		"request_id",
		middleware.GetReqID(r.Context()),
		"method",
		r.Method,
		"path",
		r.URL.Path,
	)
}

func (h *Http) Response(w http.ResponseWriter, r *http.Request, data any, status int) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func (h *Http) Ok(w http.ResponseWriter, r *http.Request, data any) {
	h.Response(w, r, data, http.StatusOK)
}

func (h *Http) Created(w http.ResponseWriter, r *http.Request, data any) {
	h.Response(w, r, data, http.StatusCreated)
}

func (h *Http) NoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Http) Detail(w http.ResponseWriter, r *http.Request, detail string, status int) {
	h.Response(w, r, envelop{"detail": detail}, status)
}

func (h *Http) BadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	h.Detail(w, r, detail, http.StatusBadRequest)
}

func (h *Http) ValidationError(w http.ResponseWriter, r *http.Request, errs validator.Errors) {
	h.Response(w, r, errs, http.StatusBadRequest)
}

func (h *Http) Unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", "Token")
	h.Detail(w, r, detail, http.StatusUnauthorized)
}

func (h *Http) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.Detail(w, r, "You do not have permission to perform this action.", http.StatusForbidden)
}

func (h *Http) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Detail(w, r, "Not found.", http.StatusNotFound)
}

func (h *Http) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.Detail(w, r, fmt.Sprintf("Method %q not allowed.", r.Method), http.StatusMethodNotAllowed)
}

func (h *Http) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.Detail(w, r, "Request was throttled.", http.StatusTooManyRequests)
}

// ServerError logs err and answers with a generic 500, the error never
// reaches the client.
func (h *Http) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.setupLogPerReq(r)
	if err != nil {
		log.Error(err.Error())
	}
	if h.cfg.Debug {
		log.Debug("stack trace", "stack", string(debug.Stack()))
	}
	h.Detail(w, r, "A server error occurred.", http.StatusInternalServerError)
}
