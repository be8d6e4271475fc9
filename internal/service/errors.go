package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("not authorized")
	ErrNotFound           = errors.New("not found")
	ErrNotAcceptable      = errors.New("old password not correct")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")

	ErrUsernameTaken = fmt.Errorf("username already taken: %w", ErrConflict)
	ErrEmailTaken    = fmt.Errorf("email already taken: %w", ErrConflict)
)

// ValidationError reports a field of a request that cannot be accepted
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
