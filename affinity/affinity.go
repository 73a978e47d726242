// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_stub.go) guarded by build tags.
// Pinning keeps an SPSC producer and consumer on fixed cores so their cursors
// stay in the owning core's cache.

package affinity

import (
	"errors"
	"runtime"
)

// ErrNotSupported is returned where thread affinity cannot be set.
var ErrNotSupported = errors.New("affinity: not supported on this platform")

// SetAffinity pins current OS thread to a given logical CPU/core on supported platforms.
// The caller must hold the thread with runtime.LockOSThread.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// PinGoroutine locks the calling goroutine to its OS thread and pins that
// thread to cpuID modulo the CPU count. The returned release func unlocks the
// thread and must be called from the same goroutine.
func PinGoroutine(cpuID int) (release func(), err error) {
	runtime.LockOSThread()
	if err := SetAffinity(cpuID % runtime.NumCPU()); err != nil {
		runtime.UnlockOSThread()
		return func() {}, err
	}
	return runtime.UnlockOSThread, nil
}
