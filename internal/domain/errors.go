package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was hit.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument marks caller input that violates a precondition.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidTransition is returned for order status changes the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden indicates the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
)

// Invalidf builds an error wrapping ErrInvalidArgument.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
