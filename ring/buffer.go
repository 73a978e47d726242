// File: ring/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-owner ring buffer with explicit size accounting.
// head==tail is ambiguous on its own; size decides full vs empty.

package ring

import (
	"fmt"
	"iter"

	"github.com/momentics/hioload-ring/api"
)

// Ensure compile-time interface compliance.
var _ api.Queue[any] = (*Buffer[any])(nil)

// Buffer is a fixed-capacity FIFO. Not safe for concurrent use.
type Buffer[T any] struct {
	data []T
	head int // oldest live element, meaningful only when size > 0
	tail int // next write slot, always (head+size) % len(data)
	size int
}

// New allocates a buffer holding up to capacity elements.
// It panics if capacity < 1; use NewChecked to get the error instead.
func New[T any](capacity int) *Buffer[T] {
	b, err := NewChecked[T](capacity)
	if err != nil {
		panic(fmt.Errorf("ring: %w", err))
	}
	return b
}

// NewChecked is New returning api.ErrInvalidCapacity (wrapped) for capacity < 1.
func NewChecked[T any](capacity int) (*Buffer[T], error) {
	if capacity < 1 {
		return nil, api.CapacityError(capacity)
	}
	return &Buffer[T]{data: make([]T, capacity)}, nil
}

// Enqueue appends item as the newest element.
// On a full buffer nothing changes and api.ErrFull is returned; item stays
// with the caller.
func (b *Buffer[T]) Enqueue(item T) error {
	if b.size == len(b.data) {
		return api.ErrFull
	}
	b.data[b.tail] = item
	b.tail = b.next(b.tail)
	b.size++
	return nil
}

// Dequeue removes and returns the oldest element; ok==false if empty.
// The vacated slot is zeroed so the buffer stops referencing the value.
func (b *Buffer[T]) Dequeue() (item T, ok bool) {
	if b.size == 0 {
		return item, false
	}
	var zero T
	item = b.data[b.head]
	b.data[b.head] = zero
	b.head = b.next(b.head)
	b.size--
	return item, true
}

// Peek returns the oldest element without removing it.
func (b *Buffer[T]) Peek() (item T, ok bool) {
	if b.size == 0 {
		return item, false
	}
	return b.data[b.head], true
}

// IsFull reports size == capacity.
func (b *Buffer[T]) IsFull() bool { return b.size == len(b.data) }

// IsEmpty reports size == 0.
func (b *Buffer[T]) IsEmpty() bool { return b.size == 0 }

// Len returns the number of live elements.
func (b *Buffer[T]) Len() int { return b.size }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.data) }

// Clear drops every live element and rewinds the cursors to slot 0.
func (b *Buffer[T]) Clear() {
	var zero T
	for i, idx := 0, b.head; i < b.size; i++ {
		b.data[idx] = zero
		idx = b.next(idx)
	}
	b.head, b.tail, b.size = 0, 0, 0
}

// All yields live elements oldest first without consuming them.
// The buffer must not be mutated during iteration.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i, idx := 0, b.head; i < b.size; i++ {
			if !yield(b.data[idx]) {
				return
			}
			idx = b.next(idx)
		}
	}
}

// AppendTo appends live elements oldest first to dst.
func (b *Buffer[T]) AppendTo(dst []T) []T {
	if b.size == 0 {
		return dst
	}
	end := b.head + b.size
	if end <= len(b.data) {
		return append(dst, b.data[b.head:end]...)
	}
	dst = append(dst, b.data[b.head:]...)
	return append(dst, b.data[:end-len(b.data)]...)
}

// next advances an index by one slot with wraparound.
func (b *Buffer[T]) next(i int) int {
	i++
	if i == len(b.data) {
		return 0
	}
	return i
}
