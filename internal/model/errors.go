package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrAuthenticationFailed is returned by the authorization authority when
	// credentials do not match a resource. Unknown resource and wrong secret
	// deliberately collapse into this single error.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrDuplicateExternalID is returned by the authorization authority when a
	// resource with the requested external id already exists.
	ErrDuplicateExternalID = errors.New("external id is not unique")
)

// InvalidInputError describes a request rejected before any side effect.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidInput creates an InvalidInputError with a formatted message.
func NewInvalidInput(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// NotAuthorizedError indicates the authorization authority denied a permission
// check or a grant.
type NotAuthorizedError struct {
	Message string
}

func (e *NotAuthorizedError) Error() string {
	return e.Message
}

// NewNotAuthorized creates a NotAuthorizedError with a formatted message.
func NewNotAuthorized(format string, args ...any) *NotAuthorizedError {
	return &NotAuthorizedError{Message: fmt.Sprintf(format, args...)}
}
