// Package ring
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity FIFO ring buffers over a single contiguous storage block.
//
// Buffer is the single-owner core: no internal synchronization, no blocking,
// no allocation after New. Enqueue on a full buffer and Dequeue on an empty one
// are ordinary outcomes reported through the return values (ErrFull and the
// comma-ok false), never panics.
//
// Locked and SPSC are opt-in wrappers for callers that share a ring across
// goroutines. See buffer.go, locked.go, spsc.go for implementation details.
package ring
