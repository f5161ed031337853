package entity

import (
	"fmt"
	"strings"

	"github.com/makhmudjon-inadullaev/quote-service/internal/utils/text"
)

// Validation limits for quote fields.
const (
	maxTextLength   = 1000
	maxAuthorLength = 255
	maxTagCount     = 10
	maxTagLength    = 50
)

// ValidateQuote validates the content fields of a quote.
// Text and Author are required and bounded in rune length; tags must be lowercase,
// non-empty, bounded in count and length, and unique.
// Returns a ValidationError describing the first violated rule.
func ValidateQuote(q *Quote) error {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Field: "text", Message: "is required"}
	}
	if text.CountRunes(q.Text) > maxTextLength {
		return &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("must not exceed %d characters", maxTextLength),
		}
	}
	if strings.TrimSpace(q.Author) == "" {
		return &ValidationError{Field: "author", Message: "is required"}
	}
	if text.CountRunes(q.Author) > maxAuthorLength {
		return &ValidationError{
			Field:   "author",
			Message: fmt.Sprintf("must not exceed %d characters", maxAuthorLength),
		}
	}
	if err := ValidateTags(q.Tags); err != nil {
		return err
	}
	if q.Likes < 0 {
		return &ValidationError{Field: "likes", Message: "cannot be negative"}
	}
	if q.Source != "" && !q.Source.Valid() {
		return &ValidationError{Field: "source", Message: "is not a known source"}
	}
	return nil
}

// ValidateTags validates a tag list in isolation.
func ValidateTags(tags []string) error {
	if len(tags) > maxTagCount {
		return &ValidationError{
			Field:   "tags",
			Message: fmt.Sprintf("must not exceed %d tags", maxTagCount),
		}
	}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if tag == "" {
			return &ValidationError{Field: "tags", Message: "cannot contain empty tags"}
		}
		if text.CountRunes(tag) > maxTagLength {
			return &ValidationError{
				Field:   "tags",
				Message: fmt.Sprintf("each tag must not exceed %d characters", maxTagLength),
			}
		}
		if tag != strings.ToLower(tag) {
			return &ValidationError{Field: "tags", Message: "must be lowercase"}
		}
		if seen[tag] {
			return &ValidationError{Field: "tags", Message: "cannot contain duplicates"}
		}
		seen[tag] = true
	}
	return nil
}

// NormalizeTags lowercases, trims, and de-duplicates a tag list while
// preserving first-seen order. Ingested quotes pass through here before
// validation so that external sources with mixed casing still conform.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
