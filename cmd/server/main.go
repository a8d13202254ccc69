// Package main implements the entry point for the StudyEngine API server,
// which turns uploaded documents and lecture transcripts into quizzes,
// flashcard decks and practice exams via LLM generation.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/studyengine/studyengine-api/internal/config"
	"github.com/studyengine/studyengine-api/internal/platform/logger"
)

// main loads configuration, sets up logging, wires the application
// dependencies and runs the HTTP server until shutdown.
func main() {
	ctx := context.Background()

	cfg, appLogger, err := initialize()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initialize loads configuration and sets up structured logging.
func initialize() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"worker_count", cfg.Task.WorkerCount,
		"queue_size", cfg.Task.QueueSize)

	return cfg, appLogger, nil
}
