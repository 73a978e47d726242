// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Debug probes and ring state dumps for internal inspection.

package control

import (
	"runtime"
	"sync"

	"github.com/momentics/hioload-ring/api"
)

var _ api.Debug = (*DebugProbes)(nil)

// RingState is a point-in-time view of one ring.
type RingState struct {
	Len int `json:"len"`
	Cap int `json:"cap"`
}

// DumpState returns the occupancy of every registered ring.
func (r *RingRegistry) DumpState() map[string]RingState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]RingState, len(r.rings))
	for name, ring := range r.rings {
		out[name] = RingState{Len: ring.Len(), Cap: ring.Cap()}
	}
	return out
}

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry with the platform probes installed.
func NewDebugProbes() *DebugProbes {
	dp := &DebugProbes{
		probes: make(map[string]func() any),
	}
	dp.RegisterProbe("platform.cpus", func() any { return runtime.NumCPU() })
	dp.RegisterProbe("platform.gomaxprocs", func() any { return runtime.GOMAXPROCS(0) })
	dp.RegisterProbe("platform.arch", func() any { return runtime.GOARCH })
	return dp
}

// RegisterProbe inserts or replaces a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}
