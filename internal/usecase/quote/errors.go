// Package quote provides use cases for managing quote entities.
// It implements business logic for listing, retrieving, liking, and
// submitting quotes, including validation and interaction with the
// quote repository.
package quote

import "errors"

// Sentinel errors for quote use case operations.
var (
	// ErrQuoteNotFound indicates that the requested quote was not found.
	ErrQuoteNotFound = errors.New("quote not found")
)
