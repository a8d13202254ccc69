package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyengine/studyengine-api/internal/api/shared"
	"github.com/studyengine/studyengine-api/internal/store"
)

// ArtifactHandler serves saved quizzes, decks and exams: plain keyed lookup
// over the artifact store.
type ArtifactHandler struct {
	artifacts store.ArtifactStore
	logger    *slog.Logger
}

// NewArtifactHandler creates a new ArtifactHandler
func NewArtifactHandler(artifacts store.ArtifactStore, logger *slog.Logger) *ArtifactHandler {
	return &ArtifactHandler{
		artifacts: artifacts,
		logger:    logger.With("component", "artifact_handler"),
	}
}

// ListQuizzes handles GET /api/quizzes requests.
func (h *ArtifactHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.artifacts.ListQuizzes(r.Context())
	if err != nil {
		h.internalError(w, r, "list quizzes", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, quizzes)
}

// GetQuiz handles GET /api/quizzes/{id} requests.
func (h *ArtifactHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.artifacts.GetQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupError(w, r, "Quiz not found", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, quiz)
}

// ListDecks handles GET /api/decks requests.
func (h *ArtifactHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.artifacts.ListDecks(r.Context())
	if err != nil {
		h.internalError(w, r, "list decks", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// GetDeck handles GET /api/decks/{id} requests.
func (h *ArtifactHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.artifacts.GetDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupError(w, r, "Deck not found", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// ListExams handles GET /api/exams requests.
func (h *ArtifactHandler) ListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := h.artifacts.ListExams(r.Context())
	if err != nil {
		h.internalError(w, r, "list exams", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, exams)
}

// GetExam handles GET /api/exams/{id} requests.
func (h *ArtifactHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	exam, err := h.artifacts.GetExam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupError(w, r, "Exam not found", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, exam)
}

func (h *ArtifactHandler) lookupError(w http.ResponseWriter, r *http.Request, message string, err error) {
	if store.IsNotFoundError(err) {
		shared.RespondWithError(w, r, http.StatusNotFound, message)
		return
	}
	h.internalError(w, r, "artifact lookup", err)
}

func (h *ArtifactHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error("artifact store operation failed", "operation", op, "error", err)
	shared.RespondWithError(w, r, http.StatusInternalServerError, "Artifact store unavailable")
}
