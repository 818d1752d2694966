package service

import "errors"

// Validation errors returned by CreateTask and UpdateTask.
// Messages are stable; callers may match on them.
var (
	// ErrEmptyTitle is returned when a title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("task has no title")

	// ErrEmptyDescription is returned when a description is empty or
	// whitespace-only.
	ErrEmptyDescription = errors.New("task has no description")
)

// IsValidationError reports whether err is one of the input validation
// errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) || errors.Is(err, ErrEmptyDescription)
}
