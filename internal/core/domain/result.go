package domain

import "github.com/lueurxax/glint/internal/core/errors"

// Result is the success/failure envelope returned by the pipeline.
type Result[T any] struct {
	OK    bool
	Value T
	Err   *errors.StageError
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{OK: true, Value: v}
}

// Fail wraps err tagged with stage. If err already carries a stage tag it is kept.
func Fail[T any](stage string, err error) Result[T] {
	var se *errors.StageError
	if errors.As(err, &se) {
		return Result[T]{Err: se}
	}

	return Result[T]{Err: errors.NewStageError(stage, err)}
}

// Error returns the failure message, or "" on success.
func (r Result[T]) Error() string {
	if r.OK || r.Err == nil {
		return ""
	}

	return r.Err.Error()
}

// Stage returns the failing stage, or "" on success.
func (r Result[T]) Stage() string {
	if r.OK || r.Err == nil {
		return ""
	}

	return r.Err.Stage
}
