package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(app.Http.NotFound)
	router.MethodNotAllowed(app.Http.MethodNotAllowed)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(app.RequestLogger)
	router.Use(app.Recoverer)
	router.Use(middleware.SetHeader("Content-Type", "application/json"))
	router.Use(middleware.StripSlashes)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", app.register)
			r.Post("/login", app.login)
			r.Get("/", app.listUsers)
			r.Get("/{id:[0-9]+}", app.getUser)
		})
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.listMovies)
			r.Post("/", app.createMovie)
			r.Get("/{id:[0-9]+}", app.getMovie)
			r.Patch("/{id:[0-9]+}", app.updateMovie)
			r.Delete("/{id:[0-9]+}", app.deleteMovie)
			r.Get("/{id:[0-9]+}/reviews", app.listMovieReviews)
			r.Post("/{id:[0-9]+}/reviews", app.createReview)
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", app.listReviews)
			r.Get("/{id:[0-9]+}", app.getReview)
			r.Delete("/{id:[0-9]+}", app.deleteReview)
		})
	})
	return router
}
