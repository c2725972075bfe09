package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrJobRunning is returned when a new indexing job is requested while one is in progress.
	// Jobs are never queued; the caller must wait or cancel.
	ErrJobRunning = errors.New("indexing already in progress")
	// ErrNoFaceFound is returned when no face could be detected in a reference image.
	// Distinct from an empty result set so callers can tell the user what went wrong.
	ErrNoFaceFound = errors.New("no face detected in reference image")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
)

// PathError reports a path that failed pre-job validation.
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
