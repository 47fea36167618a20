// Package common defines shared constants and sentinel errors used across
// the campusdesk layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Cache-level errors.
	ErrorNotFound = errors.New("not found")

	// Remote-level errors. Any network failure or non-2xx response from the
	// hosted backend is reported as ErrRemoteUnavailable; callers fall back
	// to cache-only operation.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// File storage errors.
	ErrQuotaExceeded = errors.New("local file storage quota exceeded")

	// Session errors.
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrNotAdmin     = errors.New("admin privileges required")
	ErrInvalidToken = errors.New("invalid token")

	// Validation errors.
	ErrorValidation = errors.New("validation error")
)
