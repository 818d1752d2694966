// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"tasktrack/internal/backend/googletasks"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, not found).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// FromError maps an error returned by the service to an exit code.
// A nil error maps to Success.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case store.IsNotFound(err), service.IsValidationError(err):
		return UserError
	case errors.Is(err, googletasks.ErrAuth):
		return AuthError
	default:
		return BackendError
	}
}
