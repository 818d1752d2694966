package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"tasktrack/internal/backend/googletasks"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps a service error to an HTTP status code.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFound(err):
		return http.StatusNotFound
	case service.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, googletasks.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, googletasks.ErrAuth):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message shown to clients for err.
// Internal failures never leak their details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return unexpectedErrorMessage
	case store.IsNotFound(err), service.IsValidationError(err):
		return err.Error()
	case errors.Is(err, googletasks.ErrTimeout):
		return "Task backend timed out"
	case errors.Is(err, googletasks.ErrAuth):
		return "Task backend rejected its credentials"
	default:
		return unexpectedErrorMessage
	}
}

// SanitizeValidationError turns validator errors into a short message that
// names the offending JSON fields.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), validationTagMessage(fe.Tag())))
	}
	return "Invalid request: " + strings.Join(msgs, ", ")
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
