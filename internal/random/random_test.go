package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
	assert.Equal(t, uint64(42), a.Seed())
}

func TestSource_DifferentSeeds(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.IntN(1<<30) != b.IntN(1<<30) {
			same = false
		}
	}
	assert.False(t, same)
}

func TestSource_IntRange(t *testing.T) {
	s := New(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := s.IntRange(2, 4)
		require.GreaterOrEqual(t, v, 2)
		require.LessOrEqual(t, v, 4)
		seen[v] = true
	}
	assert.Len(t, seen, 3)

	assert.Equal(t, 5, s.IntRange(5, 5))
	assert.Panics(t, func() { s.IntRange(3, 2) })
}

func TestSample(t *testing.T) {
	s := New(42)
	items := []string{"a", "b", "c", "d", "e", "f"}

	for k := 0; k <= len(items); k++ {
		got := Sample(s, items, k)
		require.Len(t, got, k)

		seen := map[string]bool{}
		for _, v := range got {
			assert.Contains(t, items, v)
			assert.False(t, seen[v], "duplicate %s", v)
			seen[v] = true
		}
	}

	// input is left untouched
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, items)
	assert.Panics(t, func() { Sample(s, items, 7) })
}

func TestChoice(t *testing.T) {
	s := New(3)
	items := []int{10, 20, 30}
	for i := 0; i < 50; i++ {
		assert.Contains(t, items, Choice(s, items))
	}
}

func TestWeighted(t *testing.T) {
	s := New(9)

	// zero weight is never chosen
	for i := 0; i < 500; i++ {
		assert.NotEqual(t, 1, Weighted(s, []float64{0.5, 0, 0.5}))
	}

	counts := make([]int, 2)
	for i := 0; i < 10000; i++ {
		counts[Weighted(s, []float64{0.9, 0.1})]++
	}
	assert.Greater(t, counts[0], counts[1]*4)

	assert.Panics(t, func() { Weighted(s, []float64{0, 0}) })
}
