package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/studyengine/studyengine-api/internal/api"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Create API handlers using the application's services
	generationHandler := api.NewGenerationHandler(app.generationService, app.logger)
	artifactHandler := api.NewArtifactHandler(app.artifactStore, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Generation job endpoints
		r.Post("/generate/document/{type}", generationHandler.CreateDocumentJob)
		r.Post("/generate/transcript/{type}", generationHandler.CreateTranscriptJob)
		r.Get("/generate/status/{jobID}", generationHandler.GetJobStatus)
		r.Post("/generate/save/{jobID}", generationHandler.SaveJobResult)

		// Saved artifact endpoints
		r.Get("/quizzes", artifactHandler.ListQuizzes)
		r.Get("/quizzes/{id}", artifactHandler.GetQuiz)
		r.Get("/decks", artifactHandler.ListDecks)
		r.Get("/decks/{id}", artifactHandler.GetDeck)
		r.Get("/exams", artifactHandler.ListExams)
		r.Get("/exams/{id}", artifactHandler.GetExam)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
