package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilitySet_SortedInsert(t *testing.T) {
	s := NewAvailabilitySet("AIRCRAFT-3", "AIRCRAFT-1")
	s.Add("AIRCRAFT-2")
	s.Add("AIRCRAFT-10")

	assert.Equal(t, []string{"AIRCRAFT-1", "AIRCRAFT-10", "AIRCRAFT-2", "AIRCRAFT-3"}, s.Items())
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains("AIRCRAFT-10"))
	assert.False(t, s.Contains("AIRCRAFT-4"))
}

func TestAvailabilitySet_RemoveAt(t *testing.T) {
	s := NewAvailabilitySet(5, 1, 3)

	assert.Equal(t, 3, s.RemoveAt(1))
	assert.Equal(t, []int{1, 5}, s.Items())
	assert.Equal(t, 5, s.RemoveAt(1))
	assert.Equal(t, 1, s.RemoveAt(0))
	assert.Equal(t, 0, s.Len())

	assert.Panics(t, func() { s.RemoveAt(0) })
}

func TestAvailabilitySet_DuplicatePanics(t *testing.T) {
	s := NewAvailabilitySet("AIRCRAFT-1")
	assert.Panics(t, func() { s.Add("AIRCRAFT-1") })
}

func TestAvailabilitySet_ItemsIsCopy(t *testing.T) {
	s := NewAvailabilitySet(1, 2)
	items := s.Items()
	items[0] = 99

	require.Equal(t, []int{1, 2}, s.Items())
}
