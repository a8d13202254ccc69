package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyengine/studyengine-api/internal/domain"
	"github.com/studyengine/studyengine-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func statusPtr(s domain.JobStatus) *domain.JobStatus { return &s }
func stringPtr(s string) *string                     { return &s }

func TestJobStoreCreateAndGet(t *testing.T) {
	t.Parallel()

	s := NewJobStore(testLogger())
	ctx := context.Background()

	job, err := s.Create(ctx, domain.GenerationTypeQuiz)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.Equal(t, domain.ProgressJobCreated, job.ProgressMessage)

	fetched, err := s.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job, fetched)

	_, err = s.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrJobNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestJobStoreGetReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewJobStore(testLogger())
	ctx := context.Background()

	job, err := s.Create(ctx, domain.GenerationTypeQuiz)
	require.NoError(t, err)

	// Mutating a returned record must not affect the stored one.
	job.ProgressMessage = "tampered"
	job.Status = domain.JobStatusFailed

	fetched, err := s.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, fetched.Status)
	assert.Equal(t, domain.ProgressJobCreated, fetched.ProgressMessage)
}

func TestJobStoreUpdateMergesFields(t *testing.T) {
	t.Parallel()

	s := NewJobStore(testLogger())
	ctx := context.Background()

	job, err := s.Create(ctx, domain.GenerationTypeFlashcards)
	require.NoError(t, err)

	// Move to processing with a progress message.
	updated, err := s.Update(ctx, job.ID, store.JobUpdate{
		Status:          statusPtr(domain.JobStatusProcessing),
		ProgressMessage: stringPtr("Preparing transcript..."),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusProcessing, updated.Status)
	assert.Equal(t, "Preparing transcript...", updated.ProgressMessage)
	assert.Equal(t, job.CreatedAt, updated.CreatedAt, "untouched fields survive the merge")

	// Progress-only update keeps the status.
	updated, err = s.Update(ctx, job.ID, store.JobUpdate{
		ProgressMessage: stringPtr("Parsing response..."),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusProcessing, updated.Status)
	assert.Equal(t, "Parsing response...", updated.ProgressMessage)

	// Terminal update attaches result and completion time.
	now := time.Now().UTC()
	result := json.RawMessage(`{"id":"deck_12345678"}`)
	updated, err = s.Update(ctx, job.ID, store.JobUpdate{
		Status:      statusPtr(domain.JobStatusCompleted),
		Result:      result,
		CompletedAt: &now,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, updated.Status)
	assert.Equal(t, result, updated.Result)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, now, *updated.CompletedAt)
}

func TestJobStoreUpdateUnknownJob(t *testing.T) {
	t.Parallel()

	s := NewJobStore(testLogger())
	_, err := s.Update(context.Background(), "missing", store.JobUpdate{
		ProgressMessage: stringPtr("hello"),
	})
	assert.ErrorIs(t, err, store.ErrJobNotFound)
}

func TestJobStoreTerminalJobsAreImmutable(t *testing.T) {
	t.Parallel()

	s := NewJobStore(testLogger())
	ctx := context.Background()

	for _, terminal := range []domain.JobStatus{domain.JobStatusCompleted, domain.JobStatusFailed} {
		job, err := s.Create(ctx, domain.GenerationTypeQuiz)
		require.NoError(t, err)

		_, err = s.Update(ctx, job.ID, store.JobUpdate{
			Status: statusPtr(domain.JobStatusProcessing),
		})
		require.NoError(t, err)
		_, err = s.Update(ctx, job.ID, store.JobUpdate{Status: statusPtr(terminal)})
		require.NoError(t, err)

		// Any further update is rejected, even a progress-only one.
		_, err = s.Update(ctx, job.ID, store.JobUpdate{
			ProgressMessage: stringPtr("late update"),
		})
		assert.ErrorIs(t, err, store.ErrJobFinalized)

		_, err = s.Update(ctx, job.ID, store.JobUpdate{
			Status: statusPtr(domain.JobStatusProcessing),
		})
		assert.ErrorIs(t, err, store.ErrJobFinalized)
	}
}

func TestJobStoreRejectsIllegalTransitions(t *testing.T) {
	t.Parallel()

	s := NewJobStore(testLogger())
	ctx := context.Background()

	job, err := s.Create(ctx, domain.GenerationTypeQuiz)
	require.NoError(t, err)

	// PENDING cannot jump straight to COMPLETED.
	_, err = s.Update(ctx, job.ID, store.JobUpdate{
		Status: statusPtr(domain.JobStatusCompleted),
	})
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	// PROCESSING cannot regress to PENDING.
	_, err = s.Update(ctx, job.ID, store.JobUpdate{
		Status: statusPtr(domain.JobStatusProcessing),
	})
	require.NoError(t, err)
	_, err = s.Update(ctx, job.ID, store.JobUpdate{
		Status: statusPtr(domain.JobStatusPending),
	})
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	// A rejected update leaves the record untouched.
	current, err := s.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusProcessing, current.Status)
}

func TestJobStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewJobStore(testLogger())
	ctx := context.Background()

	const workers = 16
	const perWorker = 25

	var wg sync.WaitGroup
	ids := make(chan string, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				job, err := s.Create(ctx, domain.GenerationTypeQuiz)
				assert.NoError(t, err)
				ids <- job.ID

				_, err = s.Update(ctx, job.ID, store.JobUpdate{
					Status:          statusPtr(domain.JobStatusProcessing),
					ProgressMessage: stringPtr(fmt.Sprintf("worker %d step %d", w, i)),
				})
				assert.NoError(t, err)

				_, err = s.GetByID(ctx, job.ID)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	assert.Equal(t, workers*perWorker, s.Len())
	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "job ids must be unique under concurrency")
		seen[id] = true
	}
}
