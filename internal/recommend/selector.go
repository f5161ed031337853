package recommend

import "math/rand"

// PoolEntry is the minimal view of a quote needed for random selection:
// its identifier and like counter. Pools are snapshots taken per request
// and never mutated in place.
type PoolEntry struct {
	ID    string
	Likes int64
}

// Selector draws quotes from a pool snapshot. The zero value is not usable;
// construct with NewSelector.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector backed by the given random source.
// Pass a seeded source in tests for deterministic draws.
//
// #nosec G404 -- math/rand is acceptable here; selection weighting is not
// a security-sensitive use of randomness.
func NewSelector(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// PickWeighted selects one quote id from the pool with probability
// proportional to likes+1, so zero-like quotes remain selectable. Entries
// in excludeIDs or with fewer than minLikes likes are filtered first.
// Returns ("", false) when the filtered pool is empty. A single surviving
// candidate is returned directly without consuming randomness.
func (s *Selector) PickWeighted(pool []PoolEntry, excludeIDs map[string]struct{}, minLikes int64) (string, bool) {
	candidates := filterPool(pool, excludeIDs, minLikes)
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 {
		return candidates[0].ID, true
	}

	var total int64
	for _, c := range candidates {
		total += c.Likes + 1
	}

	r := s.rng.Float64() * float64(total)
	var cumulative float64
	for _, c := range candidates {
		cumulative += float64(c.Likes + 1)
		if cumulative >= r {
			return c.ID, true
		}
	}

	// Floating point accumulation can land r a hair past the final
	// cumulative weight; the last candidate is the correct answer then.
	return candidates[len(candidates)-1].ID, true
}

// PickUniform selects one quote id uniformly at random from the filtered
// pool, ignoring likes entirely. Used when weighted selection is
// intentionally bypassed. Returns ("", false) on an empty filtered pool.
func (s *Selector) PickUniform(pool []PoolEntry, excludeIDs map[string]struct{}) (string, bool) {
	candidates := filterPool(pool, excludeIDs, 0)
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 {
		return candidates[0].ID, true
	}
	return candidates[s.rng.Intn(len(candidates))].ID, true
}

// filterPool drops excluded ids and entries below the like floor while
// preserving pool order.
func filterPool(pool []PoolEntry, excludeIDs map[string]struct{}, minLikes int64) []PoolEntry {
	out := make([]PoolEntry, 0, len(pool))
	for _, e := range pool {
		if e.Likes < minLikes {
			continue
		}
		if _, excluded := excludeIDs[e.ID]; excluded {
			continue
		}
		out = append(out, e)
	}
	return out
}
