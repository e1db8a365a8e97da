package scheduler

import (
	"container/heap"
	"fmt"
	"time"
)

// Release is an assigned aircraft and the day it returns to the pool
type Release struct {
	Aircraft string
	Date     time.Time
}

// ReleaseQueue holds assigned aircraft awaiting release. The scheduler only
// inspects the front: it releases while Peek is due and stops at the first
// element that is still in the future.
type ReleaseQueue interface {
	Push(r Release)
	Peek() Release
	Pop() Release
	Len() int
}

// ReleasePolicy selects the ReleaseQueue implementation
type ReleasePolicy string

const (
	// ReleaseEarliest releases the soonest-expiring aircraft first
	ReleaseEarliest ReleasePolicy = "earliest"
	// ReleaseFIFO releases in assignment order. Release dates are not
	// monotonic in assignment order, so an aircraft behind a later release
	// stays assigned past its own end date.
	ReleaseFIFO ReleasePolicy = "fifo"
)

// NewReleaseQueue returns the queue implementing policy
func NewReleaseQueue(policy ReleasePolicy) (ReleaseQueue, error) {
	switch policy {
	case ReleaseEarliest, "":
		return &EarliestQueue{}, nil
	case ReleaseFIFO:
		return &FIFOQueue{}, nil
	default:
		return nil, fmt.Errorf("unknown release policy: %q (must be earliest or fifo)", policy)
	}
}

// FIFOQueue releases aircraft strictly in the order they were assigned
type FIFOQueue struct {
	items []Release
	head  int
}

// Push appends a release; it is popped in assignment order
func (q *FIFOQueue) Push(r Release) {
	q.items = append(q.items, r)
}

// Peek returns the next release without removing it. The queue must not be empty.
func (q *FIFOQueue) Peek() Release {
	return q.items[q.head]
}

// Pop removes and returns the next release. The queue must not be empty.
func (q *FIFOQueue) Pop() Release {
	r := q.items[q.head]
	q.items[q.head] = Release{}
	q.head++
	// compact once the consumed prefix dominates
	if q.head > 64 && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return r
}

// Len returns the number of pending releases
func (q *FIFOQueue) Len() int {
	return len(q.items) - q.head
}

// EarliestQueue is a min-heap on release date. Equal dates pop in assignment order.
type EarliestQueue struct {
	h   releaseHeap
	seq uint64
}

// Push appends a release; it is popped by release date
func (q *EarliestQueue) Push(r Release) {
	heap.Push(&q.h, queuedRelease{Release: r, seq: q.seq})
	q.seq++
}

// Peek returns the next release without removing it. The queue must not be empty.
func (q *EarliestQueue) Peek() Release {
	return q.h[0].Release
}

// Pop removes and returns the next release. The queue must not be empty.
func (q *EarliestQueue) Pop() Release {
	return heap.Pop(&q.h).(queuedRelease).Release
}

// Len returns the number of pending releases
func (q *EarliestQueue) Len() int {
	return q.h.Len()
}

type queuedRelease struct {
	Release
	seq uint64
}

type releaseHeap []queuedRelease

func (h releaseHeap) Len() int { return len(h) }

func (h releaseHeap) Less(i, j int) bool {
	if h[i].Date.Equal(h[j].Date) {
		return h[i].seq < h[j].seq
	}
	return h[i].Date.Before(h[j].Date)
}

func (h releaseHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *releaseHeap) Push(x any) { *h = append(*h, x.(queuedRelease)) }

func (h *releaseHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// releaseDue moves every aircraft at the front of q whose release date is on
// or before day back into available, and returns how many were released.
func releaseDue(q ReleaseQueue, available *AvailabilitySet[string], day time.Time) int {
	released := 0
	for q.Len() > 0 && !q.Peek().Date.After(day) {
		available.Add(q.Pop().Aircraft)
		released++
	}
	return released
}
