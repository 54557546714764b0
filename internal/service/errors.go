// Package service contains the business logic of the Gharwa backend.
package service

import "errors"

var (
	// ErrInvalidCredentials is returned when login fails, without revealing
	// whether the user exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when registration collides with an existing
	// username or email.
	ErrUserExists = errors.New("Username or email already exists")

	// ErrNotFound is returned when an operation targets a missing resource.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a rejected input. The message is safe to return to
// the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError.
func Validationf(message string) error {
	return &ValidationError{Message: message}
}
