// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free ring primitives for cross-goroutine handoff. The single-owner
// ring lives in package ring; this package holds the variants whose cursors
// are shared between goroutines and therefore need atomics and cache-line
// padding.
package concurrency
