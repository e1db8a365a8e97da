package scheduler

import (
	"cmp"
	"fmt"
	"slices"
)

// AvailabilitySet holds the currently unassigned aircraft in sorted order so
// that a uniformly random index selects every member with equal probability,
// independent of insertion history.
type AvailabilitySet[T cmp.Ordered] struct {
	items []T
}

// NewAvailabilitySet returns a set containing ids
func NewAvailabilitySet[T cmp.Ordered](ids ...T) *AvailabilitySet[T] {
	s := &AvailabilitySet[T]{items: make([]T, 0, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id keeping the set sorted. Adding a member twice means an
// aircraft was released while already available and panics.
func (s *AvailabilitySet[T]) Add(id T) {
	i, found := slices.BinarySearch(s.items, id)
	if found {
		panic(fmt.Sprintf("scheduler: %v is already available", id))
	}
	s.items = slices.Insert(s.items, i, id)
}

// RemoveAt removes and returns the member at position i
func (s *AvailabilitySet[T]) RemoveAt(i int) T {
	id := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	return id
}

// Contains reports whether id is available
func (s *AvailabilitySet[T]) Contains(id T) bool {
	_, found := slices.BinarySearch(s.items, id)
	return found
}

// Len returns the number of available aircraft
func (s *AvailabilitySet[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the members in sorted order
func (s *AvailabilitySet[T]) Items() []T {
	return slices.Clone(s.items)
}
