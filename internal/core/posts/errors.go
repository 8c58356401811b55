package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for post operations.
// Each one is returned before any store mutation.
var (
	// ErrUnauthorized is returned when the credential is missing or invalid
	ErrUnauthorized = errors.New("invalid or missing credential")

	// ErrNotFound is returned when the referenced post does not exist
	ErrNotFound = errors.New("post not found")

	// ErrForbidden is returned when the caller may not act on the post
	ErrForbidden = errors.New("not allowed to modify this post")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
