// Package common defines sentinel errors shared across service layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login errors. Distinguished internally so the handler can pick the
	// right user-facing message; both map to the same status code.
	ErrorEmailNotRegistered = errors.New("email not registered")
	ErrorPasswordMismatch   = errors.New("password mismatch")

	// Auth errors (absent, malformed, badly signed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
