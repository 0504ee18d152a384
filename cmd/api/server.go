package main

import (
	"context"
	"errors"
	"fmt"
	"moviereviews/proj/internal/lib/logger"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// serve runs the http server until ctx is cancelled, then waits up to the
// configured shutdown timeout for in-flight requests.
func (app *Application) serve(ctx context.Context) error {
	server := &http.Server{
		Addr:         net.JoinHostPort(app.cfg.Server.Host, app.cfg.Server.Port),
		Handler:      app.routes(),
		ReadTimeout:  app.cfg.Server.ReadTimeout,
		WriteTimeout: app.cfg.Server.WriteTimeout,
		IdleTimeout:  app.cfg.Server.IdleTimeout,
		ErrorLog:     logger.LogAdapter(app.log),
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.log.Info("starting server", "url", fmt.Sprintf("http://%s", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		app.log.Info("shutting down the server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				app.log.Error("graceful shutdown timed out.. forcing exit", "timeout", app.cfg.Server.ShutdownTimeout)
				return fmt.Errorf("graceful shutdown timed out: %w", err)
			}
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	app.log.Info("server successfully stopped")
	return nil
}
