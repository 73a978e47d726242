// File: internal/concurrency/spsc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-producer/single-consumer ring buffer with atomic cursors,
// padded to prevent false sharing between the two sides.

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-ring/api"
)

// SPSC is a bounded lock-free FIFO for exactly one producer goroutine and one
// consumer goroutine. Cursors grow monotonically; slot = cursor % capacity, so
// any positive capacity works and tail-head is the element count.
type SPSC[T any] struct {
	_        cpu.CacheLinePad
	head     atomic.Uint64 // consumer-owned
	_        cpu.CacheLinePad
	tail     atomic.Uint64 // producer-owned
	_        cpu.CacheLinePad
	capacity uint64
	cells    []T
}

// NewSPSC allocates an SPSC ring; capacity must be >= 1.
func NewSPSC[T any](capacity int) (*SPSC[T], error) {
	if capacity < 1 {
		return nil, api.CapacityError(capacity)
	}
	return &SPSC[T]{
		capacity: uint64(capacity),
		cells:    make([]T, capacity),
	}, nil
}

// Enqueue adds item; returns api.ErrFull if full. Producer side only.
func (q *SPSC[T]) Enqueue(item T) error {
	tail := q.tail.Load()
	if tail-q.head.Load() == q.capacity {
		return api.ErrFull
	}
	q.cells[tail%q.capacity] = item
	// Publishing tail after the write makes the slot visible to the consumer.
	q.tail.Store(tail + 1)
	return nil
}

// Dequeue removes and returns the oldest item; ok false if empty.
// Consumer side only.
func (q *SPSC[T]) Dequeue() (item T, ok bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return item, false
	}
	idx := head % q.capacity
	var zero T
	item = q.cells[idx]
	q.cells[idx] = zero
	q.head.Store(head + 1)
	return item, true
}

// Peek returns the oldest item without removing it. Consumer side only.
func (q *SPSC[T]) Peek() (item T, ok bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return item, false
	}
	return q.cells[head%q.capacity], true
}

// Len returns an instantaneous count, clamped to [0, Cap].
func (q *SPSC[T]) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	n := tail - head
	if n > q.capacity {
		n = q.capacity
	}
	return int(n)
}

// Cap returns fixed buffer capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.capacity)
}

func (q *SPSC[T]) IsEmpty() bool { return q.Len() == 0 }

func (q *SPSC[T]) IsFull() bool { return q.Len() == int(q.capacity) }
