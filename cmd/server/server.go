package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// startHTTPServer serves HTTP traffic until a termination signal arrives or
// the parent context is cancelled, then winds down in order: stop accepting
// requests, give in-flight responses a bounded grace period, and finally
// drain the background workers so no generation job is left half-recorded.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "port", app.config.Server.Port)
		serveErr <- server.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		app.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		app.logger.Info("context cancelled, shutting down")
	case err := <-serveErr:
		// The listener died on its own; there is nothing left to shut
		// down gracefully, but the workers still need to drain.
		app.drainBackground()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
		return nil
	}

	grace := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("graceful shutdown failed", "error", err, "grace_period", grace)
		app.drainBackground()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	app.drainBackground()
	app.logger.Info("shutdown complete")
	return nil
}

// drainBackground winds down task processing once the HTTP listener has
// stopped. The queue closes first so nothing new is accepted; the workers
// then finish the tasks they have already picked up before the pool stops.
func (app *application) drainBackground() {
	app.taskQueue.Close()
	app.workerPool.Stop()
	app.logger.Info("background workers drained")
}
