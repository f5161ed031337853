// Package recommendation provides use cases for quote recommendations.
// It orchestrates similarity scoring, weighted random selection, and the
// two-tier result cache, delegating persistence to the repositories.
package recommendation

import "errors"

// Sentinel errors for recommendation use case operations.
var (
	// ErrQuoteNotFound indicates that the target quote was not found.
	// This error is returned when requesting recommendations for a quote
	// that does not exist in the repository.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrInvalidLimit indicates that the requested result limit is out of range.
	// Limits must be between recommend.MinLimit and recommend.MaxLimit.
	ErrInvalidLimit = errors.New("invalid limit")
)
