package main

import (
	"log/slog"
	"moviereviews/proj/internal/config"
	"moviereviews/proj/internal/lib/validator"
	"moviereviews/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	services  *services.Services
	validator *govalidator.Validate
	decoder   *schema.Decoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, services *services.Services) *Application {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	app := &Application{
		cfg:       cfg,
		log:       log,
		services:  services,
		validator: validator.New(),
		decoder:   decoder,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
	return app
}
