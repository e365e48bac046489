package hub

import "math/rand/v2"

// Sample returns up to k elements of items chosen without replacement, in an
// order determined entirely by seed. It is a pure function: the input slice
// is never mutated and the same (items, k, seed) always yields the same
// result, so callers that want a stable "you may like" panel for a session
// pass the same seed on every call instead of holding cached shuffled state.
func Sample[T any](items []T, k int, seed uint64) []T {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	if k > len(items) {
		k = len(items)
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(idx), func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})

	out := make([]T, 0, k)
	for _, i := range idx[:k] {
		out = append(out, items[i])
	}
	return out
}
