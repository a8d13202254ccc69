package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studyengine/studyengine-api/internal/domain"
	"github.com/studyengine/studyengine-api/internal/generation"
	"github.com/studyengine/studyengine-api/internal/store"
	"github.com/studyengine/studyengine-api/internal/task"
)

// TaskEnqueuer defines the interface for scheduling background tasks.
type TaskEnqueuer interface {
	// Enqueue adds a task to the processing queue
	Enqueue(t task.Task) error
}

// SavedArtifact reports where a completed result ended up after a save.
type SavedArtifact struct {
	ID   string                `json:"id"`
	Type domain.GenerationType `json:"type"`
}

// GenerationService provides the caller-facing generation operations:
// create a job and return its id immediately, poll a job, and hand a
// completed result over to the artifact store.
type GenerationService interface {
	// StartGeneration validates the request, creates a PENDING job and
	// schedules its pipeline. It returns the job id before the remote model
	// call happens; a request that fails validation creates no job.
	StartGeneration(ctx context.Context, req *domain.GenerationRequest) (string, error)

	// GetJob retrieves the current job record for polling.
	// Returns ErrJobNotFound for unknown ids.
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)

	// SaveArtifact hands a COMPLETED job's result to the artifact store,
	// keyed by the artifact's own id. The job record itself is untouched.
	SaveArtifact(ctx context.Context, jobID string) (*SavedArtifact, error)
}

// generationServiceImpl implements the GenerationService interface
type generationServiceImpl struct {
	jobs      store.JobStore
	artifacts store.ArtifactStore
	model     generation.ModelClient
	enqueuer  TaskEnqueuer
	logger    *slog.Logger
}

// NewGenerationService creates a new GenerationService.
// It returns an error if any of the required dependencies are nil.
func NewGenerationService(
	jobs store.JobStore,
	artifacts store.ArtifactStore,
	model generation.ModelClient,
	enqueuer TaskEnqueuer,
	logger *slog.Logger,
) (GenerationService, error) {
	if jobs == nil {
		return nil, errors.New("job store cannot be nil")
	}
	if artifacts == nil {
		return nil, errors.New("artifact store cannot be nil")
	}
	if model == nil {
		return nil, errors.New("model client cannot be nil")
	}
	if enqueuer == nil {
		return nil, errors.New("task enqueuer cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &generationServiceImpl{
		jobs:      jobs,
		artifacts: artifacts,
		model:     model,
		enqueuer:  enqueuer,
		logger:    logger.With("component", "generation_service"),
	}, nil
}

func (s *generationServiceImpl) StartGeneration(
	ctx context.Context,
	req *domain.GenerationRequest,
) (string, error) {
	// Validation failures never create a job record.
	if err := req.Validate(); err != nil {
		return "", err
	}

	job, err := s.jobs.Create(ctx, req.GenerationType)
	if err != nil {
		return "", &GenerationServiceError{
			Operation: "start_generation",
			Message:   "failed to create job record",
			Err:       err,
		}
	}

	logger := s.logger.With("job_id", job.ID, "generation_type", req.GenerationType)

	// The task inherits the job-scoped logger so its pipeline log lines
	// carry the same attributes as the service's own.
	generationTask, err := task.NewGenerationTask(job.ID, req, s.jobs, s.model, logger)
	if err != nil {
		s.failJob(ctx, job.ID, fmt.Sprintf("Unexpected error: %v", err))
		logger.Error("failed to build generation task", "error", err)
		return job.ID, nil
	}

	// The pipeline runs out-of-band: enqueue and return the id without
	// waiting. A full queue is recorded on the job, not raised to the
	// caller, so polling still tells the whole story.
	if err := s.enqueuer.Enqueue(generationTask); err != nil {
		s.failJob(ctx, job.ID, fmt.Sprintf("Could not schedule generation: %v", err))
		logger.Warn("failed to enqueue generation task", "error", err)
		return job.ID, nil
	}

	logger.Info("generation job scheduled",
		"source_kind", req.SourceKind(),
		"model_tier", req.Model)

	return job.ID, nil
}

func (s *generationServiceImpl) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, &GenerationServiceError{
			Operation: "get_job",
			Message:   "failed to read job record",
			Err:       err,
		}
	}
	return job, nil
}

func (s *generationServiceImpl) SaveArtifact(
	ctx context.Context,
	jobID string,
) (*SavedArtifact, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != domain.JobStatusCompleted || len(job.Result) == 0 {
		return nil, ErrJobNotCompleted
	}

	saved := &SavedArtifact{Type: job.GenerationType}
	switch job.GenerationType {
	case domain.GenerationTypeQuiz:
		var quiz domain.Quiz
		if err := json.Unmarshal(job.Result, &quiz); err != nil {
			return nil, s.badResult(jobID, err)
		}
		if err := s.artifacts.SaveQuiz(ctx, &quiz); err != nil {
			return nil, s.saveError(err)
		}
		saved.ID = quiz.ID
	case domain.GenerationTypeFlashcards:
		var deck domain.Deck
		if err := json.Unmarshal(job.Result, &deck); err != nil {
			return nil, s.badResult(jobID, err)
		}
		if err := s.artifacts.SaveDeck(ctx, &deck); err != nil {
			return nil, s.saveError(err)
		}
		saved.ID = deck.ID
	case domain.GenerationTypeExam:
		var exam domain.Exam
		if err := json.Unmarshal(job.Result, &exam); err != nil {
			return nil, s.badResult(jobID, err)
		}
		if err := s.artifacts.SaveExam(ctx, &exam); err != nil {
			return nil, s.saveError(err)
		}
		saved.ID = exam.ID
	default:
		return nil, &GenerationServiceError{
			Operation: "save_artifact",
			Message:   fmt.Sprintf("unknown generation type %q", job.GenerationType),
		}
	}

	s.logger.Info("artifact saved",
		"job_id", jobID,
		"artifact_id", saved.ID,
		"artifact_type", saved.Type)

	return saved, nil
}

// failJob records a scheduling failure on a job that never reached a worker.
func (s *generationServiceImpl) failJob(ctx context.Context, jobID, message string) {
	failed := domain.JobStatusFailed
	now := time.Now().UTC()
	if _, err := s.jobs.Update(ctx, jobID, store.JobUpdate{
		Status:      &failed,
		Error:       &message,
		CompletedAt: &now,
	}); err != nil {
		s.logger.Error("failed to record scheduling failure",
			"job_id", jobID,
			"error", err)
	}
}

func (s *generationServiceImpl) badResult(jobID string, err error) error {
	return &GenerationServiceError{
		Operation: "save_artifact",
		Message:   fmt.Sprintf("stored result for job %s is not decodable", jobID),
		Err:       err,
	}
}

func (s *generationServiceImpl) saveError(err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return ErrArtifactExists
	}
	return &GenerationServiceError{
		Operation: "save_artifact",
		Message:   "failed to store artifact",
		Err:       err,
	}
}
