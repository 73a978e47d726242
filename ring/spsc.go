// File: ring/spsc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Public api.Ring over the lock-free concurrency.SPSC: one goroutine may
// enqueue while another dequeues, with no locks.

package ring

import (
	"fmt"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/internal/concurrency"
)

// SPSC[T] implements api.Ring[T] for exactly one producer and one consumer.
// Peek belongs to the consumer side.
type SPSC[T any] struct {
	*concurrency.SPSC[T]
}

// NewSPSC creates a new ring of the given capacity; panics with an error
// wrapping api.ErrInvalidCapacity if capacity < 1.
func NewSPSC[T any](capacity int) *SPSC[T] {
	q, err := concurrency.NewSPSC[T](capacity)
	if err != nil {
		panic(fmt.Errorf("ring: %w", err))
	}
	return &SPSC[T]{SPSC: q}
}

// Ensure compile-time compliance.
var _ api.Ring[any] = (*SPSC[any])(nil)
