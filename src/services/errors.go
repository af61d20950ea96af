package services

import "errors"

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a uniqueness invariant was violated
	ErrConflict = errors.New("record already exists")

	// ErrValidation indicates the request carried malformed or disallowed fields
	ErrValidation = errors.New("validation failed")

	// ErrInvalidToken indicates a missing, malformed, expired, or revoked token
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials indicates authentication failed
	ErrInvalidCredentials = errors.New("invalid credentials")
)
