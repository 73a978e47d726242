package control

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/ring"
)

func TestRingRegistry_Collect(t *testing.T) {
	rr := NewRingRegistry()
	q := ring.NewLocked[int](4)
	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	require.NoError(t, rr.Register("events", q))

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(rr))

	expected := `
# HELP hioload_ring_capacity Fixed capacity of the ring
# TYPE hioload_ring_capacity gauge
hioload_ring_capacity{ring="events"} 4
# HELP hioload_ring_length Number of live elements currently held by the ring
# TYPE hioload_ring_length gauge
hioload_ring_length{ring="events"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))

	q.Dequeue()
	assert.Equal(t, RingState{Len: 1, Cap: 4}, rr.DumpState()["events"])
}

func TestRingRegistry_RegisterUnregister(t *testing.T) {
	rr := NewRingRegistry()
	require.NoError(t, rr.Register("b", ring.New[int](1)))
	require.NoError(t, rr.Register("a", ring.NewSPSC[int](2)))
	assert.ErrorIs(t, rr.Register("a", ring.New[int](1)), api.ErrAlreadyExists)
	assert.Equal(t, []string{"a", "b"}, rr.Names())

	require.NoError(t, rr.Unregister("a"))
	assert.ErrorIs(t, rr.Unregister("a"), api.ErrNotFound)
	assert.Equal(t, 2, testutil.CollectAndCount(rr))
	assert.Equal(t, 1, testutil.CollectAndCount(rr, "hioload_ring_length"))
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("custom", func() any { return 7 })
	state := dp.DumpState()
	assert.Equal(t, 7, state["custom"])
	assert.Contains(t, state, "platform.cpus")
	assert.Contains(t, state, "platform.arch")
}
