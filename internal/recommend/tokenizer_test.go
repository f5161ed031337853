package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "lowercases and splits",
			text: "Hard Work Beats Talent",
			want: []string{"hard", "work", "beats", "talent"},
		},
		{
			name: "strips punctuation",
			text: "Stay hungry, stay foolish!",
			want: []string{"stay", "hungry", "foolish"},
		},
		{
			name: "drops short tokens",
			text: "to be or not to be",
			want: nil,
		},
		{
			name: "drops stop words",
			text: "the quick brown fox and the lazy dog",
			want: []string{"quick", "brown", "fox", "lazy", "dog"},
		},
		{
			name: "dedupes repeated words",
			text: "work work work",
			want: []string{"work"},
		},
		{
			name: "keeps digits",
			text: "catch 22 situations in 2024",
			want: []string{"catch", "situations", "2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			assert.Len(t, got, len(tt.want))
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestTokenize_OnlyPunctuation(t *testing.T) {
	assert.Empty(t, Tokenize("!!! ... ???"))
}

func TestJaccard(t *testing.T) {
	set := func(words ...string) map[string]struct{} {
		s := make(map[string]struct{}, len(words))
		for _, w := range words {
			s[w] = struct{}{}
		}
		return s
	}

	tests := []struct {
		name string
		a, b map[string]struct{}
		want float64
	}{
		{"both empty", set(), set(), 0},
		{"one empty", set("work"), set(), 0},
		{"identical", set("hard", "work"), set("hard", "work"), 1},
		{"disjoint", set("hard"), set("soft"), 0},
		{"partial overlap", set("hard", "work", "beats", "talent"), set("talent", "without", "hard", "work", "nothing"), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, jaccard(tt.a, tt.b), 1e-9)
		})
	}
}
