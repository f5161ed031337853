package pathutil

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantID    string
		wantError error
	}{
		{
			name:      "valid quote ID",
			raw:       "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			wantID:    "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			wantError: nil,
		},
		{
			name:      "uppercase is canonicalized",
			raw:       "6BA7B810-9DAD-11D1-80B4-00C04FD430C8",
			wantID:    "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			wantError: nil,
		},
		{
			name:      "invalid ID - not a UUID",
			raw:       "abc",
			wantID:    "",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - numeric",
			raw:       "123",
			wantID:    "",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - empty",
			raw:       "",
			wantID:    "",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - extra path segment",
			raw:       "6ba7b810-9dad-11d1-80b4-00c04fd430c8/similar",
			wantID:    "",
			wantError: ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotErr := ParseID(tt.raw)

			if gotID != tt.wantID {
				t.Errorf("ParseID() id = %v, want %v", gotID, tt.wantID)
			}

			if !errors.Is(gotErr, tt.wantError) {
				t.Errorf("ParseID() error = %v, want %v", gotErr, tt.wantError)
			}
		})
	}
}
