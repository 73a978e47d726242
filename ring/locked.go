// File: ring/locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutex-guarded Buffer for multi-producer/multi-consumer callers.

package ring

import (
	"sync"

	"github.com/momentics/hioload-ring/api"
)

var _ api.Queue[any] = (*Locked[any])(nil)

// Locked serializes every Buffer operation behind a single mutex.
type Locked[T any] struct {
	mu  sync.Mutex
	buf *Buffer[T]
}

// NewLocked allocates a Locked ring; panics if capacity < 1 like New.
func NewLocked[T any](capacity int) *Locked[T] {
	return &Locked[T]{buf: New[T](capacity)}
}

// Enqueue adds item; returns api.ErrFull if full.
func (l *Locked[T]) Enqueue(item T) error {
	l.mu.Lock()
	err := l.buf.Enqueue(item)
	l.mu.Unlock()
	return err
}

// Dequeue removes and returns (item, ok); ok==false if empty.
func (l *Locked[T]) Dequeue() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Dequeue()
}

// DequeueErr is Dequeue reporting emptiness as api.ErrEmpty.
func (l *Locked[T]) DequeueErr() (T, error) {
	item, ok := l.Dequeue()
	if !ok {
		return item, api.ErrEmpty
	}
	return item, nil
}

// Peek returns the oldest element without removing it.
func (l *Locked[T]) Peek() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Peek()
}

// IsFull reports whether Enqueue would be rejected.
func (l *Locked[T]) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.IsFull()
}

func (l *Locked[T]) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.IsEmpty()
}

// Len is a snapshot; it may change as soon as the lock is released.
func (l *Locked[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Len()
}

// Cap is immutable and needs no lock.
func (l *Locked[T]) Cap() int { return l.buf.Cap() }

// Clear empties the ring under the lock.
func (l *Locked[T]) Clear() {
	l.mu.Lock()
	l.buf.Clear()
	l.mu.Unlock()
}

// Drain moves up to len(dst) elements into dst under one lock acquisition
// and returns how many were written.
func (l *Locked[T]) Drain(dst []T) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for n < len(dst) {
		item, ok := l.buf.Dequeue()
		if !ok {
			break
		}
		dst[n] = item
		n++
	}
	return n
}
