package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError represents a non-2xx response from the AI gateway. Message
// holds the server-supplied error text: the structured `error`/`message`
// field when the body was JSON, the raw body text otherwise.
type StatusError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error implements the error interface. The message is returned as-is so
// callers can display exactly what the gateway said.
func (e *StatusError) Error() string {
	return e.Message
}

// NewStatusError creates a new status error.
func NewStatusError(statusCode int, message string) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// IsAuthError checks if the error is an authentication error
func IsAuthError(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusNotFound
	}
	return false
}

// IsForbiddenError checks if the error is a forbidden error
func IsForbiddenError(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusForbidden
	}
	return false
}

// ValidationError represents a locally detected input error. These block
// submission before any network call is made.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// FieldErrors is a field-keyed error map, used by the onboarding flow to
// report every invalid field of a step at once.
type FieldErrors map[string]string

// Add records a message for a field. Later messages for the same field win.
func (e FieldErrors) Add(field, message string) {
	e[field] = message
}

// HasErrors returns true if there are any errors
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// authMessages maps provider error codes to fixed human-readable strings.
// Unmapped codes fall through to the provider's raw message.
var authMessages = map[string]string{
	"invalid-credentials": "Invalid email or password",
	"wrong-password":      "Incorrect password",
	"weak-password":       "Password must be at least 6 characters",
	"email-in-use":        "An account with this email already exists",
	"user-not-found":      "No account exists for this email",
}

// AuthMessage translates a provider auth error code into a human-readable
// message, falling back to the raw code when unmapped.
func AuthMessage(code string) string {
	if msg, ok := authMessages[code]; ok {
		return msg
	}
	return code
}
