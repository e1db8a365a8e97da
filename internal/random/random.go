// Package random provides the single seeded stream shared by every generator.
//
// A Source is passed explicitly through each generation call, so the output of
// a run depends only on the seed and the order in which stages consume it.
package random

import (
	"fmt"
	"math/rand/v2"
)

// Source is a deterministic pseudo-random stream. It is not safe for concurrent use.
type Source struct {
	seed uint64
	rng  *rand.Rand
}

// New returns a Source seeded with seed
func New(seed uint64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed)),
	}
}

// Seed returns the seed the stream was created with
func (s *Source) Seed() uint64 {
	return s.seed
}

// IntN returns a uniform int in [0, n). It panics if n <= 0.
func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}

// IntRange returns a uniform int in the closed range [lo, hi]
func (s *Source) IntRange(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("random: invalid range [%d, %d]", lo, hi))
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// Float64 returns a uniform float64 in [0.0, 1.0)
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Choice returns a uniformly chosen element of items. It panics on an empty slice.
func Choice[T any](s *Source, items []T) T {
	return items[s.IntN(len(items))]
}

// Sample returns k distinct elements of items in selection order.
// items is not modified.
func Sample[T any](s *Source, items []T, k int) []T {
	if k < 0 || k > len(items) {
		panic(fmt.Sprintf("random: sample size %d out of range [0, %d]", k, len(items)))
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + s.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

// Weighted returns an index into weights chosen with probability proportional
// to its weight. Weights must be non-negative with a positive sum.
func Weighted(s *Source, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic("random: weights must have a positive sum")
	}
	x := s.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}
