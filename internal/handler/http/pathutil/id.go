package pathutil

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID validates a quote ID path segment and returns it in canonical
// lowercase UUID form.
//
// Parameters:
//   - raw: The path segment to validate (e.g., the {id} wildcard value)
//
// Returns:
//   - string: The canonical UUID string
//   - error: ErrInvalidID if the segment is not a valid UUID
//
// Example:
//
//	id, err := ParseID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
//	// Returns: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}
