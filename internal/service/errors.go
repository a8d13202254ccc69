package service

import (
	"errors"
	"fmt"
)

// Common sentinel errors for GenerationService
var (
	// ErrJobNotFound indicates that the requested job does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobNotCompleted indicates that a save was attempted on a job that
	// has not reached the COMPLETED state.
	ErrJobNotCompleted = errors.New("job has no completed result to save")

	// ErrArtifactExists indicates that the artifact id is already taken in
	// the artifact store.
	ErrArtifactExists = errors.New("artifact already saved")
)

// GenerationServiceError wraps errors from the generation service with context.
type GenerationServiceError struct {
	// Operation is the operation that failed (e.g., "start_generation", "save_artifact")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GenerationServiceError.
func (e *GenerationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("generation service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}
