package domain

import "errors"

// Sentinel errors for the application. Handlers map these to HTTP status
// codes in one place; services and repositories wrap them with context.
var (
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("resource not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInternal           = errors.New("internal server error")
)
