package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studyengine/studyengine-api/internal/config"
	"github.com/studyengine/studyengine-api/internal/generation"
	"github.com/studyengine/studyengine-api/internal/platform/claude"
	"github.com/studyengine/studyengine-api/internal/platform/memstore"
	"github.com/studyengine/studyengine-api/internal/service"
	"github.com/studyengine/studyengine-api/internal/store"
	"github.com/studyengine/studyengine-api/internal/task"
)

// application holds the shared dependencies so wiring and shutdown
// sequencing live in one place.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores (using interfaces for proper abstraction)
	jobStore      store.JobStore
	artifactStore store.ArtifactStore

	// Service interfaces
	modelClient       generation.ModelClient
	generationService service.GenerationService

	// Task handling
	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the configuration and logger that must be
// established before application wiring.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Initialize stores
	app.jobStore = memstore.NewJobStore(logger)
	app.artifactStore = memstore.NewArtifactStore(logger)

	// Create the LLM model client
	modelClient, err := claude.NewClient(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model client: %w", err)
	}
	app.modelClient = modelClient
	logger.Info("model client initialized",
		"fast_model", cfg.LLM.FastModel,
		"capable_model", cfg.LLM.CapableModel)

	// Initialize task queue and worker pool
	app.taskQueue = task.NewTaskQueue(cfg.Task.QueueSize, logger)
	app.workerPool = task.NewWorkerPool(app.taskQueue, task.WorkerPoolConfig{
		WorkerCount: cfg.Task.WorkerCount,
	}, logger)

	// Initialize generation service
	app.generationService, err = service.NewGenerationService(
		app.jobStore,
		app.artifactStore,
		app.modelClient,
		app.taskQueue,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the background workers and the HTTP server. It returns when
// the server has shut down and the workers have drained.
func (app *application) Run(ctx context.Context) error {
	app.workerPool.Start()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
