package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		// Quote routes with IDs (should be normalized)
		{
			name:     "quote with ID",
			path:     "/quotes/6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			expected: "/quotes/:id",
		},
		{
			name:     "quote with another ID",
			path:     "/quotes/550e8400-e29b-41d4-a716-446655440000",
			expected: "/quotes/:id",
		},
		{
			name:     "quote with uppercase ID",
			path:     "/quotes/550E8400-E29B-41D4-A716-446655440000",
			expected: "/quotes/:id",
		},
		{
			name:     "quote with ID and trailing slash",
			path:     "/quotes/6ba7b810-9dad-11d1-80b4-00c04fd430c8/",
			expected: "/quotes/:id",
		},
		{
			name:     "quote with ID and query params",
			path:     "/quotes/6ba7b810-9dad-11d1-80b4-00c04fd430c8?limit=5",
			expected: "/quotes/:id",
		},
		{
			name:     "quote similar",
			path:     "/quotes/6ba7b810-9dad-11d1-80b4-00c04fd430c8/similar",
			expected: "/quotes/:id/similar",
		},
		{
			name:     "quote similar with query params",
			path:     "/quotes/6ba7b810-9dad-11d1-80b4-00c04fd430c8/similar?limit=20",
			expected: "/quotes/:id/similar",
		},
		{
			name:     "quote like",
			path:     "/quotes/550e8400-e29b-41d4-a716-446655440000/like",
			expected: "/quotes/:id/like",
		},

		// Static endpoints (should remain unchanged)
		{
			name:     "random endpoint",
			path:     "/quotes/random",
			expected: "/quotes/random",
		},
		{
			name:     "random with query params",
			path:     "/quotes/random?weighted=true",
			expected: "/quotes/random",
		},
		{
			name:     "health endpoint",
			path:     "/health",
			expected: "/health",
		},
		{
			name:     "health with query params",
			path:     "/health?format=json",
			expected: "/health",
		},
		{
			name:     "metrics endpoint",
			path:     "/metrics",
			expected: "/metrics",
		},
		{
			name:     "ready endpoint",
			path:     "/ready",
			expected: "/ready",
		},
		{
			name:     "live endpoint",
			path:     "/live",
			expected: "/live",
		},
		{
			name:     "swagger docs",
			path:     "/swagger/index.html",
			expected: "/swagger/index.html",
		},

		// List endpoints (should remain unchanged)
		{
			name:     "quotes list",
			path:     "/quotes",
			expected: "/quotes",
		},
		{
			name:     "quotes list with query params",
			path:     "/quotes?limit=10",
			expected: "/quotes",
		},

		// Unknown/unmatched paths (should remain unchanged)
		{
			name:     "unknown path with ID",
			path:     "/unknown/path/123",
			expected: "/unknown/path/123",
		},
		{
			name:     "unknown nested path",
			path:     "/api/v2/items/456",
			expected: "/api/v2/items/456",
		},

		// Edge cases
		{
			name:     "root path",
			path:     "/",
			expected: "/",
		},
		{
			name:     "empty path",
			path:     "",
			expected: "",
		},
		{
			name:     "path with only query params",
			path:     "/?page=1",
			expected: "/",
		},
		{
			name:     "quote with numeric ID (should not normalize)",
			path:     "/quotes/123",
			expected: "/quotes/123",
		},
		{
			name:     "quote with malformed UUID (should not normalize)",
			path:     "/quotes/6ba7b810-9dad-11d1-80b4",
			expected: "/quotes/6ba7b810-9dad-11d1-80b4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizePath(tt.path)
			if result != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestNormalizePath_Cardinality(t *testing.T) {
	// Test that different IDs produce the same normalized path
	paths := []string{
		"/quotes/6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"/quotes/550e8400-e29b-41d4-a716-446655440000",
		"/quotes/f47ac10b-58cc-4372-a567-0e02b2c3d479",
		"/quotes/00000000-0000-0000-0000-000000000000",
	}

	expected := "/quotes/:id"
	for _, path := range paths {
		result := NormalizePath(path)
		if result != expected {
			t.Errorf("NormalizePath(%q) = %q, want %q (cardinality check failed)", path, result, expected)
		}
	}

	// Verify that this reduces cardinality from 4 to 1
	uniqueResults := make(map[string]bool)
	for _, path := range paths {
		uniqueResults[NormalizePath(path)] = true
	}

	if len(uniqueResults) != 1 {
		t.Errorf("Expected cardinality of 1, got %d unique paths: %v", len(uniqueResults), uniqueResults)
	}
}

func TestNormalizePath_TrailingSlash(t *testing.T) {
	// Test that trailing slashes are handled consistently
	tests := []struct {
		path1    string
		path2    string
		expected string
	}{
		{
			"/quotes/6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			"/quotes/6ba7b810-9dad-11d1-80b4-00c04fd430c8/",
			"/quotes/:id",
		},
		{"/health", "/health/", "/health"},
		{"/quotes", "/quotes/", "/quotes"},
	}

	for _, tt := range tests {
		result1 := NormalizePath(tt.path1)
		result2 := NormalizePath(tt.path2)

		if result1 != tt.expected {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path1, result1, tt.expected)
		}
		if result2 != tt.expected {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path2, result2, tt.expected)
		}
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	cardinality := GetExpectedCardinality()
	if cardinality <= 0 {
		t.Errorf("GetExpectedCardinality() = %d, want > 0", cardinality)
	}
	if cardinality > 50 {
		t.Errorf("GetExpectedCardinality() = %d, want <= 50 to keep metrics labels bounded", cardinality)
	}
}
