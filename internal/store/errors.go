package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrJobNotFound, ErrQuizNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., two artifacts with the same id).
	ErrDuplicate = errors.New("entity already exists")

	// ErrJobFinalized is returned when an update targets a job that has
	// already reached a terminal state. Terminal records are immutable.
	ErrJobFinalized = errors.New("job is in a terminal state")

	// ErrInvalidTransition is returned when an update would move a job
	// backwards through its state machine.
	ErrInvalidTransition = errors.New("invalid job status transition")

	// Entity-specific "not found" errors

	// ErrJobNotFound indicates that the requested job does not exist in the store.
	ErrJobNotFound = fmt.Errorf("%w: job", ErrNotFound)

	// ErrQuizNotFound indicates that the requested quiz does not exist in the store.
	ErrQuizNotFound = fmt.Errorf("%w: quiz", ErrNotFound)

	// ErrDeckNotFound indicates that the requested deck does not exist in the store.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)

	// ErrExamNotFound indicates that the requested exam does not exist in the store.
	ErrExamNotFound = fmt.Errorf("%w: exam", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
