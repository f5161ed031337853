package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"both empty", "", "", 0},
		{"first empty", "", "abc", 3},
		{"second empty", "abc", "", 3},
		{"identical", "twain", "twain", 0},
		{"single substitution", "cat", "car", 1},
		{"single insertion", "cat", "cart", 1},
		{"single deletion", "cart", "cat", 1},
		{"kitten sitting", "kitten", "sitting", 3},
		{"completely different", "abc", "xyz", 3},
		{"multibyte runes", "café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EditDistance(tt.a, tt.b))
		})
	}
}

func TestEditDistance_Symmetric(t *testing.T) {
	assert.Equal(t, EditDistance("mark twain", "twain"), EditDistance("twain", "mark twain"))
}

func TestAuthorSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact match", "Mark Twain", "Mark Twain", 1.0},
		{"case insensitive match", "mark twain", "MARK TWAIN", 1.0},
		{"surrounding whitespace", " Mark Twain ", "Mark Twain", 1.0},
		{"substring containment", "Mark Twain", "Twain", 0.8},
		{"substring reversed", "Twain", "Mark Twain", 0.8},
		{"both empty", "", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AuthorSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestAuthorSimilarity_EditDistanceFallback(t *testing.T) {
	// "maya angelou" vs "mara angelou": distance 1, max length 12.
	got := AuthorSimilarity("Maya Angelou", "Mara Angelou")
	assert.InDelta(t, 11.0/12.0, got, 1e-9)
}

func TestAuthorSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"Albert Einstein", "Isaac Newton"},
		{"a", "zzzzzzzzzzzzzzzzzzzz"},
		{"", "Somebody"},
	}
	for _, p := range pairs {
		got := AuthorSimilarity(p[0], p[1])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

// The substring shortcut also fires for unrelated short names that happen
// to be contained in longer ones. Known approximation, kept as-is.
func TestAuthorSimilarity_SubstringLoophole(t *testing.T) {
	assert.InDelta(t, 0.8, AuthorSimilarity("Al", "Albert"), 1e-9)
}
