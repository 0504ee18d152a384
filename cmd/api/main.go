package main

import (
	"context"
	"flag"
	"moviereviews/proj/internal/config"
	"moviereviews/proj/internal/lib/logger"
	"moviereviews/proj/internal/services"
	"moviereviews/proj/internal/storage/postgres"
	"moviereviews/proj/internal/storage/postgres/models"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")

	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")
	if cfg.DB.Migrate {
		if err := storage.Migrate(ctx); err != nil {
			panic(err)
		}
		log.Info("database schema is up to date")
	}
	m := models.New(storage)
	app := NewApplication(cfg, log, services.New(log, cfg, services.Storage{
		Users:   m.User,
		Tokens:  m.Token,
		Movies:  m.Movie,
		Reviews: m.Review,
	}))
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.serve(runCtx); err != nil {
		app.log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}
}
