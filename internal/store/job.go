package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/studyengine/studyengine-api/internal/domain"
)

// JobUpdate describes a partial update to a job record. Nil fields are left
// unchanged; non-nil fields are overlaid onto the current record before it
// is rewritten as a whole. Readers never observe a half-applied update.
type JobUpdate struct {
	Status          *domain.JobStatus
	ProgressMessage *string
	Error           *string
	Result          json.RawMessage
	CompletedAt     *time.Time
}

// JobStore defines the interface for tracking generation jobs.
// Implementations must support concurrent Get/Update from multiple in-flight
// pipelines: operations on the same job id are linearizable, and an update
// is visible to every subsequent read (read-after-write consistency).
// Version: 1.0
type JobStore interface {
	// Create registers a new job in the PENDING state and returns it.
	// The returned record is a copy owned by the caller.
	Create(ctx context.Context, generationType domain.GenerationType) (*domain.Job, error)

	// GetByID retrieves a job by its opaque id.
	// Returns ErrJobNotFound if the job does not exist.
	GetByID(ctx context.Context, id string) (*domain.Job, error)

	// Update overlays the non-nil fields of update onto the job and rewrites
	// the record. It enforces the job state machine: updates to terminal
	// records return ErrJobFinalized, and a status change the machine does
	// not permit returns ErrInvalidTransition. The updated record is
	// returned as a copy.
	Update(ctx context.Context, id string, update JobUpdate) (*domain.Job, error)
}
