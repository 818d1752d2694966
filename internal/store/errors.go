package store

import "errors"

// ErrNotFound is returned when no task matches the requested id.
// The message is stable; callers may match on it.
var ErrNotFound = errors.New("task not found")

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
