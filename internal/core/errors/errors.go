// Package errors provides centralized error definitions for the application.
// Errors are organized by failure class so the HTTP layer can map them to
// status codes with errors.Is.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - Unexported errors (err*): Use for internal package errors
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	// ErrValidation indicates caller-supplied input failed a precondition.
	ErrValidation = errors.New("validation error")

	// ErrUnsupportedProvider indicates the LLM provider is not in the fixed provider set.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrUnsupportedModel indicates the model is not in the provider's allow-list.
	ErrUnsupportedModel = errors.New("unsupported model")
)

// External provider errors.
var (
	// ErrTransport indicates a network-level failure calling an external provider.
	ErrTransport = errors.New("transport error")

	// ErrUpstream indicates the provider answered but signaled an application-level failure.
	ErrUpstream = errors.New("upstream error")

	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")
)

// Stage names reported by the podcast pipeline.
const (
	StageFetch    = "fetch"
	StageClassify = "classify"
	StageAnalyze  = "analyze"
	StageScript   = "script"
	StageSpeech   = "speech"
)

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the given stage tag. A nil err yields nil.
func NewStageError(stage string, err error) *StageError {
	if err == nil {
		return nil
	}

	return &StageError{Stage: stage, Err: err}
}

// Validationf builds an ErrValidation-wrapped error with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsClientError reports whether err was caused by the caller rather than a provider.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnsupportedProvider) ||
		errors.Is(err, ErrUnsupportedModel)
}

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
