package recommend

import "strings"

// EditDistance computes the Levenshtein distance between two strings using
// classic dynamic programming with insert, delete, and substitute all
// costing 1. It operates on runes so multi-byte authors compare correctly.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// 1行分のバッファを使い回す省メモリ版
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// AuthorSimilarity estimates how similar two author names are on a [0, 1]
// scale. An exact case-insensitive match scores 1.0; if one normalized name
// contains the other, 0.8; otherwise the score degrades linearly with edit
// distance relative to the longer name.
//
// This is a lexical heuristic, not semantic matching. The substring shortcut
// is meant to catch truncations like "Twain" vs "Mark Twain" and also fires
// for unrelated short names that happen to be substrings of longer ones;
// that behavior is known and accepted.
func AuthorSimilarity(a, b string) float64 {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))

	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}

	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	sim := float64(maxLen-EditDistance(na, nb)) / float64(maxLen)
	if sim < 0 {
		return 0
	}
	return sim
}
