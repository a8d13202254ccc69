package api

import (
	"encoding/json"
	"time"

	"github.com/studyengine/studyengine-api/internal/domain"
)

// CreateJobResponse is returned when a generation job has been accepted.
type CreateJobResponse struct {
	JobID string `json:"job_id"`
}

// JobStatusResponse is the polling shape for a generation job. Result is
// present only for COMPLETED jobs; Error only for FAILED ones.
type JobStatusResponse struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	GenerationType  string          `json:"generation_type"`
	ProgressMessage string          `json:"progress_message"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	Result          json.RawMessage `json:"result,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// jobToResponse converts a domain.Job to its polling DTO.
func jobToResponse(job *domain.Job) JobStatusResponse {
	resp := JobStatusResponse{
		ID:              job.ID,
		Status:          string(job.Status),
		GenerationType:  string(job.GenerationType),
		ProgressMessage: job.ProgressMessage,
		CreatedAt:       job.CreatedAt,
		CompletedAt:     job.CompletedAt,
		Error:           job.Error,
	}
	if job.Status == domain.JobStatusCompleted {
		resp.Result = job.Result
	}
	return resp
}

// TranscriptGenerationRequest is the JSON body for transcript-sourced
// generation. Counts relevant to the requested artifact type must be
// positive; the rest are ignored.
type TranscriptGenerationRequest struct {
	Transcript         string `json:"transcript"          validate:"required"`
	Title              string `json:"title"`
	CustomInstructions string `json:"custom_instructions"`
	Model              string `json:"model"               validate:"omitempty,oneof=fast capable"`
	MCQCount           int    `json:"mcq_count"           validate:"gte=0"`
	ShortAnswerCount   int    `json:"short_answer_count"  validate:"gte=0"`
	FlashcardCount     int    `json:"flashcard_count"     validate:"gte=0"`
}
