// Package workload drives a ring buffer under a configured access mode and
// verifies FIFO delivery while counting full and empty outcomes.
package workload
