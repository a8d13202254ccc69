package memstore

import (
	"context"
	"log/slog"
	"sync"

	"github.com/studyengine/studyengine-api/internal/domain"
	"github.com/studyengine/studyengine-api/internal/store"
)

// JobStore is an in-memory implementation of store.JobStore. A single mutex
// covers the job table; every record that crosses the store boundary is a
// deep copy, so an update is read-modify-rewrite under the lock and readers
// never observe a half-applied merge.
type JobStore struct {
	mu     sync.RWMutex
	jobs   map[string]*domain.Job
	logger *slog.Logger
}

// NewJobStore creates an empty in-memory job store.
func NewJobStore(logger *slog.Logger) *JobStore {
	return &JobStore{
		jobs:   make(map[string]*domain.Job),
		logger: logger.With("component", "job_store"),
	}
}

// Create registers a new job in the PENDING state and returns a copy of it.
func (s *JobStore) Create(
	ctx context.Context,
	generationType domain.GenerationType,
) (*domain.Job, error) {
	job := domain.NewJob(generationType)

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	s.logger.Debug("job created",
		"job_id", job.ID,
		"generation_type", generationType)

	return job.Clone(), nil
}

// GetByID retrieves a copy of a job by its id.
func (s *JobStore) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, store.ErrJobNotFound
	}
	return job.Clone(), nil
}

// Update overlays the non-nil fields of update onto the current record and
// rewrites it as a whole. Terminal records are immutable; status changes
// must follow the job state machine.
func (s *JobStore) Update(
	ctx context.Context,
	id string,
	update store.JobUpdate,
) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}

	if current.Status.Terminal() {
		return nil, store.ErrJobFinalized
	}
	if update.Status != nil && !current.Status.CanTransitionTo(*update.Status) {
		return nil, store.ErrInvalidTransition
	}

	next := current.Clone()
	if update.Status != nil {
		next.Status = *update.Status
	}
	if update.ProgressMessage != nil {
		next.ProgressMessage = *update.ProgressMessage
	}
	if update.Error != nil {
		next.Error = *update.Error
	}
	if update.Result != nil {
		next.Result = make([]byte, len(update.Result))
		copy(next.Result, update.Result)
	}
	if update.CompletedAt != nil {
		at := update.CompletedAt.UTC()
		next.CompletedAt = &at
	}

	s.jobs[id] = next

	s.logger.Debug("job updated",
		"job_id", id,
		"status", next.Status,
		"progress", next.ProgressMessage)

	return next.Clone(), nil
}

// Len reports the number of jobs currently held. Jobs are never evicted, so
// this only grows; it exists for observability and tests.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

var _ store.JobStore = (*JobStore)(nil)
