package workload

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/ring"
)

func testConfig(mode string, capacity, producers, consumers, items int) control.Config {
	return control.Config{
		Capacity:  capacity,
		Mode:      mode,
		Producers: producers,
		Consumers: consumers,
		Items:     items,
		Seed:      42,
		Log:       control.LogConfig{Level: "debug", Format: "console"},
	}
}

func TestRunner_Modes(t *testing.T) {
	cases := []control.Config{
		testConfig(control.ModeSingle, 7, 1, 1, 20000),
		testConfig(control.ModeSingle, 1, 1, 1, 500),
		testConfig(control.ModeLocked, 16, 4, 3, 20000),
		testConfig(control.ModeLocked, 1, 2, 2, 1000),
		testConfig(control.ModeSPSC, 5, 1, 1, 20000),
	}
	for _, cfg := range cases {
		t.Run(cfg.Mode, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			metrics := NewMetrics(reg)
			rr := control.NewRingRegistry()

			r, err := NewRunner(cfg, zaptest.NewLogger(t), WithMetrics(metrics), WithRingRegistry(rr))
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			res, err := r.Run(ctx)
			require.NoError(t, err)

			items := uint64(cfg.Items)
			assert.Equal(t, items, res.Enqueued)
			assert.Equal(t, items, res.Dequeued)
			assert.Equal(t, cfg.Capacity, res.Capacity)
			assert.Equal(t, float64(items), testutil.ToFloat64(metrics.Enqueued.WithLabelValues(cfg.Mode)))
			assert.Equal(t, float64(items), testutil.ToFloat64(metrics.Dequeued.WithLabelValues(cfg.Mode)))
			assert.Empty(t, rr.Names(), "shared ring must be unregistered after the run")
		})
	}
}

func TestRunner_SingleRejectsWhenFull(t *testing.T) {
	r, err := NewRunner(testConfig(control.ModeSingle, 2, 1, 1, 5000), nil)
	require.NoError(t, err)
	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, res.Rejected)
	assert.NotZero(t, res.EmptyPolls)
}

func TestRunner_ZeroItems(t *testing.T) {
	r, err := NewRunner(testConfig(control.ModeLocked, 4, 2, 2, 0), nil)
	require.NoError(t, err)
	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Dequeued)
}

func TestRunner_Cancelled(t *testing.T) {
	r, err := NewRunner(testConfig(control.ModeSingle, 8, 1, 1, 1_000_000), nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunner_SharedCancelledWhileFull(t *testing.T) {
	// Two producers, consumers that never get all items because the
	// context expires first.
	r, err := NewRunner(testConfig(control.ModeLocked, 1, 2, 1, 1<<40), nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = r.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	_, err := NewRunner(testConfig(control.ModeSPSC, 0, 2, 1, 10), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrInvalidCapacity))
}

func TestConsume_DetectsOrderViolation(t *testing.T) {
	q := ring.NewLocked[token](4)
	require.NoError(t, q.Enqueue(token{producer: 0, seq: 1}))
	require.NoError(t, q.Enqueue(token{producer: 0, seq: 0}))

	var delivered atomic.Uint64
	var c counters
	err := consume(context.Background(), q, 1, 2, &delivered, &c)
	assert.ErrorIs(t, err, ErrOrderViolation)
	assert.Equal(t, uint64(2), c.dequeued)
}

func TestRunner_Pinned(t *testing.T) {
	cfg := testConfig(control.ModeSPSC, 4, 1, 1, 5000)
	cfg.Pin = true
	r, err := NewRunner(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), res.Dequeued)
}
