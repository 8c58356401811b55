package users

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyTaken is returned when the email belongs to another user
	ErrEmailAlreadyTaken = errors.New("email already taken")
)

// InvalidFieldError reports a rejected registration field
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsInvalidField checks if error is a registration validation error
func IsInvalidField(err error) bool {
	var fieldErr *InvalidFieldError
	return errors.As(err, &fieldErr)
}
