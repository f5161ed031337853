// Package recommend implements the quote recommendation core: text
// tokenization, lexical similarity scoring, and popularity-weighted random
// selection. All functions in this package are pure and safe for concurrent
// use; they operate on request-local snapshots and hold no shared state.
package recommend

import (
	"strings"
	"unicode"
)

// stopWords is the fixed list of common English function words dropped
// during tokenization. Tokens of length <= 2 are dropped before this
// filter is applied, so short function words (is, at, an, ...) are
// intentionally absent.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "but": {}, "for": {}, "nor": {}, "not": {},
	"are": {}, "was": {}, "were": {}, "been": {}, "being": {}, "have": {},
	"has": {}, "had": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"shall": {}, "should": {}, "can": {}, "could": {}, "may": {}, "might": {},
	"must": {}, "this": {}, "that": {}, "these": {}, "those": {}, "with": {},
	"from": {}, "into": {}, "about": {}, "than": {}, "then": {}, "when": {},
	"where": {}, "which": {}, "who": {}, "whom": {}, "what": {}, "your": {},
	"their": {}, "them": {}, "they": {}, "there": {}, "here": {}, "very": {},
	"just": {}, "only": {}, "also": {}, "some": {}, "such": {}, "all": {},
	"you": {}, "our": {}, "its": {}, "his": {}, "her": {},
}

// Tokenize normalizes quote text into a stop-word-filtered keyword set.
// It lower-cases the input, strips characters that are neither letters,
// digits, nor whitespace, splits on whitespace, drops tokens of length <= 2
// and stop words, and de-duplicates. Empty text yields an empty set.
func Tokenize(text string) map[string]struct{} {
	if text == "" {
		return map[string]struct{}{}
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(b.String()) {
		if len(tok) <= 2 {
			continue
		}
		if _, skip := stopWords[tok]; skip {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// jaccard returns |a ∩ b| / |a ∪ b| for two string sets.
// Two empty sets yield 0.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// tagSet builds a lowercase set from a tag list.
func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}
