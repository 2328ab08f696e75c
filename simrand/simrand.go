/*
Package simrand is the single seeded random source backing every
stochastic decision in the simulator. No component seeds its own PRNG
and nothing here reads the wall clock: (seed, config) fully determines
a run's statistical profile, the same "no hidden globals" discipline
the teacher applies to policy/config values — the PRNG is constructed
once and threaded through as an explicit value, never a package-level
global.
*/
package simrand

import "math/rand"

// Source wraps a single *rand.Rand and exposes the operations every
// simulation component needs: uniform and normal draws, weighted choice,
// sampling without replacement, and integer ranges.
type Source struct {
	rng *rand.Rand
}

// New builds a Source from an explicit seed. Two Sources built from the
// same seed and driven with the same call sequence produce the same
// draws.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Uniform draws a float64 uniformly from [a, b).
func (s *Source) Uniform(a, b float64) float64 {
	if b <= a {
		return a
	}
	return a + s.rng.Float64()*(b-a)
}

// Normal draws from a normal distribution with the given mean and
// standard deviation.
func (s *Source) Normal(mean, stddev float64) float64 {
	return s.rng.NormFloat64()*stddev + mean
}

// IntInRange draws an integer from [a, b], inclusive of both ends.
func (s *Source) IntInRange(a, b int) int {
	if b <= a {
		return a
	}
	return a + s.rng.Intn(b-a+1)
}

// Bool draws true with the given probability.
func (s *Source) Bool(probability float64) bool {
	return s.rng.Float64() < probability
}

// WeightedChoice picks one of values, biased by the matching weight.
// Weights need not sum to 1; a non-positive total falls back to a
// uniform pick so callers never get a zero-value result from a
// malformed weight table.
func WeightedChoice[T any](s *Source, values []T, weights []float64) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return values[s.rng.Intn(len(values))]
	}
	target := s.rng.Float64() * total
	cumulative := 0.0
	for i, v := range values {
		w := 0.0
		if i < len(weights) {
			w = weights[i]
		}
		if w <= 0 {
			continue
		}
		cumulative += w
		if target < cumulative {
			return v
		}
	}
	return values[len(values)-1]
}

// SampleWithoutReplacement returns up to k distinct elements from items.
// When k < len(items) it shuffles a copy and returns the first k, so the
// result is in random order, not items' relative order; when k >=
// len(items) it returns a copy of items unchanged.
func SampleWithoutReplacement[T any](s *Source, items []T, k int) []T {
	if k >= len(items) {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	if k <= 0 {
		return nil
	}
	pool := make([]T, len(items))
	copy(pool, items)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:k]
}

// Shuffle permutes items in place using this Source.
func Shuffle[T any](s *Source, items []T) {
	s.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
