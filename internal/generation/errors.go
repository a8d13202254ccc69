package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrUnsupportedCombination is returned when a (generation type, source
	// kind) pairing has no prompt builder. The job fails fast.
	ErrUnsupportedCombination = errors.New("generation type is not supported for this source kind")

	// ErrRemoteService is returned when the model provider call fails at the
	// transport or API level. The provider message is preserved by wrapping.
	ErrRemoteService = errors.New("model provider call failed")

	// ErrRateLimited flags the rate-limit flavor of a provider failure.
	ErrRateLimited = fmt.Errorf("%w: rate limited", ErrRemoteService)

	// ErrInvalidConfig is returned when a model client is constructed with
	// an unusable configuration.
	ErrInvalidConfig = errors.New("invalid model client configuration")
)

// Stages at which parsing a model reply can fail.
const (
	// MalformedStageJSON means the reply was not a single JSON document.
	MalformedStageJSON = "json"

	// MalformedStageSchema means the JSON decoded but did not match the
	// artifact schema pinned in the prompt.
	MalformedStageSchema = "schema"
)

// MalformedResponseError reports a model reply that could not be converted
// into a typed artifact. Stage records how far parsing got; Field names the
// offending field for schema failures.
type MalformedResponseError struct {
	Stage string
	Field string
	Err   error
}

// Error implements the error interface for MalformedResponseError.
func (e *MalformedResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed model response at stage %q, field %q: %v", e.Stage, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed model response at stage %q: %v", e.Stage, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// newJSONError wraps a JSON decode failure.
func newJSONError(err error) error {
	return &MalformedResponseError{Stage: MalformedStageJSON, Err: err}
}

// newSchemaError reports a schema-shape mismatch on the named field.
func newSchemaError(field, format string, args ...any) error {
	return &MalformedResponseError{
		Stage: MalformedStageSchema,
		Field: field,
		Err:   fmt.Errorf(format, args...),
	}
}
