// Command createsuperuser adds an admin account to the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"moviereviews/proj/internal/config"
	"moviereviews/proj/internal/lib/logger"
	"moviereviews/proj/internal/lib/validator"
	"moviereviews/proj/internal/services/auth"
	"moviereviews/proj/internal/storage/postgres"
	"moviereviews/proj/internal/storage/postgres/models"
	"os"
	"time"
)

type superuserParams struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,notblank,max=72"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	var params superuserParams
	flag.StringVar(&params.Email, "email", "", "email of the new admin")
	flag.StringVar(&params.Password, "password", os.Getenv("SUPERUSER_PASSWORD"), "password (defaults to $SUPERUSER_PASSWORD)")
	flag.StringVar(&params.FirstName, "first-name", "", "first name")
	flag.StringVar(&params.LastName, "last-name", "", "last name")

	flag.Parse()
	if errs := validator.ValidateStruct(validator.New(), params); errs != nil {
		fmt.Fprintln(os.Stderr, errs.Error())
		os.Exit(2)
	}
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	if cfg.DB.Migrate {
		if err := storage.Migrate(ctx); err != nil {
			panic(err)
		}
	}
	m := models.New(storage)
	user, err := auth.New(log, m.User, m.Token, cfg.Auth.BcryptCost).CreateSuperuser(ctx, auth.SignupParams{
		Email:     params.Email,
		Password:  params.Password,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyExists) {
			fmt.Fprintln(os.Stderr, "email already exists")
			os.Exit(1)
		}
		panic(err)
	}
	fmt.Printf("superuser %s created (id %d)\n", user.Email, user.ID)
}
