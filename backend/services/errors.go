package services

import "errors"

var (
	// ErrInvalidInput marks malformed identifiers or missing required fields.
	// Reported to the caller as a client error, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks an absent referenced entity.
	ErrNotFound = errors.New("not found")
)
