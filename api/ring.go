// Package api
// Author: momentics@gmail.com
//
// Ring buffer contracts shared by the single-owner, locked and SPSC rings.

package api

// Ring is the minimal fixed-capacity FIFO contract.
type Ring[T any] interface {
	// Enqueue adds an item as the newest element, returns ErrFull if full.
	Enqueue(item T) error
	// Dequeue removes the oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}

// Queue extends Ring with inspection and reset.
type Queue[T any] interface {
	Ring[T]
	// Peek returns the oldest item without removing it.
	Peek() (T, bool)
	IsFull() bool
	IsEmpty() bool
	// Clear drops every held item and rewinds the cursors.
	Clear()
}

// Sizer is the read-only view used by metric collectors.
type Sizer interface {
	Len() int
	Cap() int
}
