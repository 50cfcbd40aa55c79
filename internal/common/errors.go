// Package common defines shared sentinel errors used across the service
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token lifecycle errors. All three collapse to an unauthenticated
	// outcome at the handler boundary; the distinction is for diagnostics.
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")

	// Configuration errors, fatal at startup.
	ErrMissingSecret   = errors.New("missing signing secret")
	ErrIdenticalSecret = errors.New("access and refresh secrets must differ")
)
