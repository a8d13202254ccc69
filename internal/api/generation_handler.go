package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/studyengine/studyengine-api/internal/api/shared"
	"github.com/studyengine/studyengine-api/internal/domain"
	"github.com/studyengine/studyengine-api/internal/service"
)

// maxUploadBytes bounds the request body for document uploads. It sits above
// the domain's PDF limit so that an oversized payload is rejected by request
// validation (with a clear message) rather than by a connection reset.
const maxUploadBytes = domain.MaxDocumentBytes + (4 << 20)

// GenerationHandler handles generation-related HTTP requests
type GenerationHandler struct {
	generationService service.GenerationService
	validator         *validator.Validate
	logger            *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(generationService service.GenerationService, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		validator:         validator.New(),
		logger:            logger.With("component", "generation_handler"),
	}
}

// parseGenerationType maps the {type} route parameter onto a domain type.
func parseGenerationType(raw string) (domain.GenerationType, error) {
	switch domain.GenerationType(raw) {
	case domain.GenerationTypeQuiz:
		return domain.GenerationTypeQuiz, nil
	case domain.GenerationTypeFlashcards:
		return domain.GenerationTypeFlashcards, nil
	case domain.GenerationTypeExam:
		return domain.GenerationTypeExam, nil
	default:
		return "", fmt.Errorf("unknown generation type %q", raw)
	}
}

// modelTierOrDefault maps the optional model field, defaulting to the fast tier.
func modelTierOrDefault(raw string) domain.ModelTier {
	if raw == "" {
		return domain.ModelTierFast
	}
	return domain.ModelTier(raw)
}

// CreateDocumentJob handles POST /api/generate/document/{type} requests.
// The body is multipart/form-data: a "file" part carrying the PDF plus form
// fields for counts and options.
func (h *GenerationHandler) CreateDocumentJob(w http.ResponseWriter, r *http.Request) {
	generationType, err := parseGenerationType(chi.URLParam(r, "type"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing PDF upload in \"file\" field")
		return
	}
	defer func() { _ = file.Close() }()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read PDF upload")
		return
	}

	counts, err := formCounts(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req := &domain.GenerationRequest{
		GenerationType:      generationType,
		Model:               modelTierOrDefault(r.FormValue("model")),
		Title:               strings.TrimSpace(r.FormValue("title")),
		CustomInstructions:  r.FormValue("custom_instructions"),
		MCQCount:            counts.mcq,
		ShortAnswerCount:    counts.shortAnswer,
		FlashcardCount:      counts.flashcards,
		ExamQuestionCount:   counts.examQuestions,
		ExamDurationMinutes: counts.examDuration,
		PDFData:             pdfData,
	}

	h.startJob(w, r, req, header.Filename)
}

// CreateTranscriptJob handles POST /api/generate/transcript/{type} requests.
// Exam generation is document-only; the pipeline fails such a job fast.
func (h *GenerationHandler) CreateTranscriptJob(w http.ResponseWriter, r *http.Request) {
	generationType, err := parseGenerationType(chi.URLParam(r, "type"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var body TranscriptGenerationRequest
	if err := shared.DecodeJSON(r, &body); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(body); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	req := &domain.GenerationRequest{
		GenerationType:     generationType,
		Model:              modelTierOrDefault(body.Model),
		Title:              strings.TrimSpace(body.Title),
		CustomInstructions: body.CustomInstructions,
		MCQCount:           body.MCQCount,
		ShortAnswerCount:   body.ShortAnswerCount,
		FlashcardCount:     body.FlashcardCount,
		TranscriptText:     body.Transcript,
	}

	h.startJob(w, r, req, "")
}

// startJob submits the request to the service and answers 202 with the job
// id. Domain validation failures map to 400 and create no job.
func (h *GenerationHandler) startJob(
	w http.ResponseWriter,
	r *http.Request,
	req *domain.GenerationRequest,
	sourceName string,
) {
	jobID, err := h.generationService.StartGeneration(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to start generation",
			"error", err,
			"generation_type", req.GenerationType)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to start generation")
		return
	}

	h.logger.Info("generation job accepted",
		"job_id", jobID,
		"generation_type", req.GenerationType,
		"source", sourceName)

	shared.RespondWithJSON(w, r, http.StatusAccepted, CreateJobResponse{JobID: jobID})
}

// GetJobStatus handles GET /api/generate/status/{jobID} requests.
func (h *GenerationHandler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.generationService.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.Error("failed to read job", "error", err, "job_id", jobID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to read job")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(job))
}

// SaveJobResult handles POST /api/generate/save/{jobID} requests, handing a
// completed result to the artifact store.
func (h *GenerationHandler) SaveJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	saved, err := h.generationService.SaveArtifact(r.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "Job not found")
		case errors.Is(err, service.ErrJobNotCompleted):
			shared.RespondWithError(w, r, http.StatusConflict, "Job has no completed result to save")
		case errors.Is(err, service.ErrArtifactExists):
			shared.RespondWithError(w, r, http.StatusConflict, "Artifact already saved")
		default:
			h.logger.Error("failed to save artifact", "error", err, "job_id", jobID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to save artifact")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, saved)
}

// formCounts extracts the optional numeric form fields.
type generationCounts struct {
	mcq           int
	shortAnswer   int
	flashcards    int
	examQuestions int
	examDuration  int
}

func formCounts(r *http.Request) (generationCounts, error) {
	var counts generationCounts
	fields := []struct {
		name   string
		target *int
	}{
		{"mcq_count", &counts.mcq},
		{"short_answer_count", &counts.shortAnswer},
		{"flashcard_count", &counts.flashcards},
		{"exam_question_count", &counts.examQuestions},
		{"exam_duration_minutes", &counts.examDuration},
	}
	for _, field := range fields {
		raw := r.FormValue(field.name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return counts, fmt.Errorf("field %q must be an integer", field.name)
		}
		*field.target = value
	}
	return counts, nil
}
