package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the current state of a generation job.
type JobStatus string

// Possible job status values
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status is final. A job in a terminal state
// accepts no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo reports whether the state machine permits moving from s
// to next. Transitions are one-directional:
//
//	PENDING → PROCESSING → {COMPLETED | FAILED}
//
// A PENDING job may also fail directly, e.g. when it cannot be scheduled.
// Re-asserting the current non-terminal status is permitted so that
// progress-only updates stay legal.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == s {
		return true
	}
	switch s {
	case JobStatusPending:
		return next == JobStatusProcessing || next == JobStatusFailed
	case JobStatusProcessing:
		return next == JobStatusCompleted || next == JobStatusFailed
	default:
		return false
	}
}

// ProgressJobCreated is the progress message a freshly created job carries.
const ProgressJobCreated = "Job created, waiting to start..."

// Job is the mutable tracking record for one in-flight generation attempt.
// It is owned exclusively by the job store; pipeline code mutates it only
// through store updates.
type Job struct {
	ID              string          `json:"id"`
	Status          JobStatus       `json:"status"`
	GenerationType  GenerationType  `json:"generation_type"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	ProgressMessage string          `json:"progress_message"`
	Error           string          `json:"error,omitempty"`
	Result          json.RawMessage `json:"result,omitempty"`
}

// NewJob creates a new Job in the PENDING state with a fresh opaque id.
func NewJob(generationType GenerationType) *Job {
	return &Job{
		ID:              uuid.NewString(),
		Status:          JobStatusPending,
		GenerationType:  generationType,
		CreatedAt:       time.Now().UTC(),
		ProgressMessage: ProgressJobCreated,
	}
}

// Clone returns a deep copy of the job. Stores hand out clones so that no
// caller can mutate a record behind the store's back.
func (j *Job) Clone() *Job {
	clone := *j
	if j.CompletedAt != nil {
		at := *j.CompletedAt
		clone.CompletedAt = &at
	}
	if j.Result != nil {
		clone.Result = make(json.RawMessage, len(j.Result))
		copy(clone.Result, j.Result)
	}
	return &clone
}
