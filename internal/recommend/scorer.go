package recommend

import (
	"sort"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
)

// Default scoring parameters. The blend and sub-weights are part of the
// service's observable behavior; changing them changes every cached ranking.
const (
	DefaultLimit   = 10
	MaxLimit       = 50
	MinLimit       = 1
	MinScore       = 0.08
	keywordBlend   = 0.4
	semanticBlend  = 0.6
	authorWeight   = 0.5
	tagWeight      = 0.3
	lengthWeight   = 0.2
	exactAuthorSub = 0.9
	authorCutoff   = 0.7
	neutralTagSim  = 0.5
)

// ScoredQuote pairs a candidate quote with its similarity score against a
// target. Score is always within [0, 1].
type ScoredQuote struct {
	Quote entity.Quote `json:"quote"`
	Score float64      `json:"score"`
}

// Score computes the blended similarity between a target and a candidate
// quote:
//
//	overall = keywordSim*0.4 + semanticSim*0.6
//
// keywordSim is the Jaccard coefficient of the tokenized texts. semanticSim
// is a weighted sum of author similarity (0.5), tag overlap (0.3), and
// length ratio (0.2), normalized by the total applied weight. The author
// weight stays in the denominator even when the author contribution is zero;
// dissimilar authors therefore drag the score down. That asymmetry is
// intentional and load-bearing for cached rankings.
//
// Score is a total function over well-formed quotes; it never fails.
func Score(target, candidate *entity.Quote) float64 {
	keywordSim := jaccard(Tokenize(target.Text), Tokenize(candidate.Text))

	var weighted, applied float64

	// Author: exact match contributes a fixed 0.9, close fuzzy matches
	// contribute proportionally, everything else contributes 0 while the
	// weight still counts toward the denominator.
	authorSim := AuthorSimilarity(target.Author, candidate.Author)
	switch {
	case authorSim == 1.0:
		weighted += exactAuthorSub * authorWeight
	case authorSim > authorCutoff:
		weighted += authorSim * authorWeight
	}
	applied += authorWeight

	// Tags: Jaccard of lowercase tag sets. Two untagged quotes are treated
	// as neutrally similar; a one-sided tag list counts as no overlap.
	switch {
	case len(target.Tags) == 0 && len(candidate.Tags) == 0:
		weighted += neutralTagSim * tagWeight
	case len(target.Tags) == 0 || len(candidate.Tags) == 0:
		// contributes 0
	default:
		weighted += jaccard(tagSet(target.Tags), tagSet(candidate.Tags)) * tagWeight
	}
	applied += tagWeight

	// Length ratio.
	weighted += lengthRatio(len(target.Text), len(candidate.Text)) * lengthWeight
	applied += lengthWeight

	semanticSim := weighted / applied

	return keywordSim*keywordBlend + semanticSim*semanticBlend
}

// Rank scores every candidate in the pool against the target and returns
// the ranked result:
//   - the target itself is excluded,
//   - entries scoring below MinScore are dropped,
//   - ordering is descending by score with ties broken by pool order,
//   - the result is truncated to limit.
//
// Callers are responsible for validating limit into [MinLimit, MaxLimit];
// Rank clamps defensively so a bad limit cannot produce an unbounded result.
func Rank(target *entity.Quote, pool []*entity.Quote, limit int) []ScoredQuote {
	if limit < MinLimit || limit > MaxLimit {
		limit = DefaultLimit
	}

	results := make([]ScoredQuote, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == target.ID {
			continue
		}
		score := Score(target, candidate)
		if score < MinScore {
			continue
		}
		results = append(results, ScoredQuote{Quote: *candidate, Score: score})
	}

	// 安定ソート: 同点は元のプール順を維持する
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// lengthRatio returns min(a, b) / max(a, b), or 1 when both are 0.
func lengthRatio(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	if a > b {
		a, b = b, a
	}
	return float64(a) / float64(b)
}
