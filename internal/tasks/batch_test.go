package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository is a simple mock implementation of database.Repository
type mockRepository[T any] struct {
	batches [][]T
	errors  []error
}

func (m *mockRepository[T]) UpsertBatch(_ context.Context, records []T) error {
	m.batches = append(m.batches, records)
	if len(m.errors) > 0 {
		err := m.errors[0]
		m.errors = m.errors[1:]
		return err
	}
	return nil
}

func (m *mockRepository[T]) Count(context.Context) (int, error) {
	n := 0
	for _, b := range m.batches {
		n += len(b)
	}
	return n, nil
}

func (m *mockRepository[T]) FetchAll(context.Context, ...string) ([]T, error) {
	var all []T
	for _, b := range m.batches {
		all = append(all, b...)
	}
	return all, nil
}

func (m *mockRepository[T]) Clear(context.Context) (int64, error) {
	n, _ := m.Count(context.Background())
	m.batches = nil
	return int64(n), nil
}

func TestWriteInBatches_Chunks(t *testing.T) {
	repo := &mockRepository[int]{}
	records := []int{1, 2, 3, 4, 5, 6, 7}

	require.NoError(t, writeInBatches(context.Background(), repo, records, 3))

	require.Len(t, repo.batches, 3)
	assert.Equal(t, []int{1, 2, 3}, repo.batches[0])
	assert.Equal(t, []int{4, 5, 6}, repo.batches[1])
	assert.Equal(t, []int{7}, repo.batches[2])
}

func TestWriteInBatches_Empty(t *testing.T) {
	repo := &mockRepository[int]{}
	require.NoError(t, writeInBatches(context.Background(), repo, nil, 10))
	assert.Empty(t, repo.batches)
}

func TestWriteInBatches_InvalidBatchSize(t *testing.T) {
	repo := &mockRepository[int]{}
	assert.Error(t, writeInBatches(context.Background(), repo, []int{1}, 0))
	assert.Empty(t, repo.batches)
}

func TestWriteInBatches_StopsOnError(t *testing.T) {
	boom := errors.New("disk full")
	repo := &mockRepository[int]{errors: []error{nil, boom}}

	err := writeInBatches(context.Background(), repo, []int{1, 2, 3, 4, 5}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, repo.batches, 2)
}

func TestWriteInBatches_Cancelled(t *testing.T) {
	repo := &mockRepository[int]{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := writeInBatches(ctx, repo, []int{1, 2}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.batches)
}
