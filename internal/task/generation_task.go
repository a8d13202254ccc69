package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyengine/studyengine-api/internal/domain"
	"github.com/studyengine/studyengine-api/internal/generation"
	"github.com/studyengine/studyengine-api/internal/store"
)

// Common errors
var (
	ErrNilJobStore    = errors.New("job store cannot be nil")
	ErrNilModelClient = errors.New("model client cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrNilRequest     = errors.New("generation request cannot be nil")
	ErrEmptyJobID     = errors.New("job ID cannot be empty")
)

// Progress messages written to the job record as the pipeline advances.
// They mirror what a polling client displays.
const (
	progressEncodingPDF  = "Encoding PDF..."
	progressTranscript   = "Preparing transcript..."
	progressParsing      = "Parsing response..."
	progressFailed       = "Generation failed"
	progressSendingModel = "Sending to Claude (%s)..."
	progressSucceeded    = "Successfully generated %s!"
)

// GenerationTask implements the Task interface for one generation job. It
// drives the job through its state machine: prompt construction, the remote
// model call, response parsing, and the terminal store update. Every failure
// inside Execute is converted into a FAILED job record; nothing escapes to
// the worker unrecorded, since no caller waits on the other end of an
// out-of-band task.
type GenerationTask struct {
	id      uuid.UUID
	jobID   string
	request *domain.GenerationRequest
	jobs    store.JobStore
	model   generation.ModelClient
	logger  *slog.Logger
	status  TaskStatus
}

// NewGenerationTask creates a generation task for an already-created job.
// The caller's logger is expected to carry the job attributes; the task
// only adds its own type.
func NewGenerationTask(
	jobID string,
	request *domain.GenerationRequest,
	jobs store.JobStore,
	model generation.ModelClient,
	logger *slog.Logger,
) (*GenerationTask, error) {
	if jobs == nil {
		return nil, ErrNilJobStore
	}
	if model == nil {
		return nil, ErrNilModelClient
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if request == nil {
		return nil, ErrNilRequest
	}
	if jobID == "" {
		return nil, ErrEmptyJobID
	}

	return &GenerationTask{
		id:      uuid.New(),
		jobID:   jobID,
		request: request,
		jobs:    jobs,
		model:   model,
		logger:  logger.With("task_type", TaskTypeGeneration),
		status:  TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *GenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *GenerationTask) Type() string {
	return TaskTypeGeneration
}

// Status returns the current task status
func (t *GenerationTask) Status() TaskStatus {
	return t.status
}

// Execute runs the generation pipeline. The two suspension points are the
// store updates (bounded) and the remote model call (no retry, no timeout:
// a hung provider hangs this job only). A panic anywhere in the pipeline
// is caught and recorded as an unexpected failure.
func (t *GenerationTask) Execute(ctx context.Context) (err error) {
	t.status = TaskStatusProcessing
	t.logger.Info("starting generation task", "generation_type", t.request.GenerationType)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during generation: %v", r)
			t.recordFailure(ctx, fmt.Sprintf("Unexpected error: %v", r))
		}
	}()

	// 1. Move the job to PROCESSING with a source-appropriate message.
	progress := progressTranscript
	var attachment *generation.Attachment
	if t.request.SourceKind() == domain.SourceKindDocument {
		progress = progressEncodingPDF
		attachment = &generation.Attachment{
			Data:      t.request.PDFData,
			MediaType: generation.MediaTypePDF,
		}
	}
	processing := domain.JobStatusProcessing
	if _, err := t.jobs.Update(ctx, t.jobID, store.JobUpdate{
		Status:          &processing,
		ProgressMessage: &progress,
	}); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to move job to processing", "error", err)
		return fmt.Errorf("failed to move job to processing: %w", err)
	}

	// 2. Build the prompt. The unsupported pairing fails fast here.
	prompt, err := generation.BuildPrompt(t.request)
	if err != nil {
		return t.fail(ctx, err)
	}

	// 3. Call the remote model.
	t.progress(ctx, fmt.Sprintf(progressSendingModel, t.request.Model))

	reply, err := t.model.GenerateText(ctx, t.request.Model, prompt, attachment)
	if err != nil {
		return t.fail(ctx, err)
	}

	// 4. Parse the reply into a typed artifact and serialize it.
	t.progress(ctx, progressParsing)

	result, err := t.parseReply(reply)
	if err != nil {
		return t.fail(ctx, err)
	}

	// 5. Terminal update: COMPLETED with the result attached.
	now := time.Now().UTC()
	completed := domain.JobStatusCompleted
	done := fmt.Sprintf(progressSucceeded, t.request.GenerationType)
	if _, err := t.jobs.Update(ctx, t.jobID, store.JobUpdate{
		Status:          &completed,
		Result:          result,
		CompletedAt:     &now,
		ProgressMessage: &done,
	}); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to record completed job", "error", err)
		return fmt.Errorf("failed to record completed job: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("generation task completed")
	return nil
}

// parseReply dispatches to the parser for the request's artifact type and
// returns the serialized artifact.
func (t *GenerationTask) parseReply(reply string) (json.RawMessage, error) {
	var artifact any
	var err error
	switch t.request.GenerationType {
	case domain.GenerationTypeQuiz:
		artifact, err = generation.ParseQuiz(reply, t.request)
	case domain.GenerationTypeFlashcards:
		artifact, err = generation.ParseFlashcards(reply, t.request)
	case domain.GenerationTypeExam:
		artifact, err = generation.ParseExam(reply, t.request)
	default:
		err = fmt.Errorf("%w: %q", generation.ErrUnsupportedCombination, t.request.GenerationType)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(artifact)
}

// progress writes a progress-only update. A failure to write progress is
// logged but does not fail the pipeline: the next update will catch up.
func (t *GenerationTask) progress(ctx context.Context, message string) {
	if _, err := t.jobs.Update(ctx, t.jobID, store.JobUpdate{
		ProgressMessage: &message,
	}); err != nil {
		t.logger.Warn("failed to update job progress", "error", err, "progress", message)
	}
}

// fail converts a pipeline error into a FAILED job record and returns the
// error for the worker's log.
func (t *GenerationTask) fail(ctx context.Context, cause error) error {
	t.recordFailure(ctx, failureMessage(cause))
	t.logger.Error("generation task failed", "error", cause)
	return cause
}

// recordFailure stamps the job FAILED with the given human-readable message.
func (t *GenerationTask) recordFailure(ctx context.Context, message string) {
	t.status = TaskStatusFailed
	now := time.Now().UTC()
	failed := domain.JobStatusFailed
	failedProgress := progressFailed
	if _, err := t.jobs.Update(ctx, t.jobID, store.JobUpdate{
		Status:          &failed,
		Error:           &message,
		CompletedAt:     &now,
		ProgressMessage: &failedProgress,
	}); err != nil {
		t.logger.Error("failed to record job failure", "error", err, "failure", message)
	}
}

// failureMessage maps a pipeline error onto the human-readable string a
// polling client sees, preserving diagnostic context per failure category.
func failureMessage(err error) string {
	var malformed *generation.MalformedResponseError
	switch {
	case errors.As(err, &malformed):
		if malformed.Stage == generation.MalformedStageJSON {
			return fmt.Sprintf("Failed to parse AI response as JSON: %v", malformed.Err)
		}
		return fmt.Sprintf("AI response did not match the expected %s schema (field %q): %v",
			malformed.Stage, malformed.Field, malformed.Err)
	case errors.Is(err, generation.ErrUnsupportedCombination):
		return err.Error()
	case errors.Is(err, generation.ErrRemoteService):
		return fmt.Sprintf("Model provider error: %v", err)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}

var _ Task = (*GenerationTask)(nil)
