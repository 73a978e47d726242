package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/api"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun_Single(t *testing.T) {
	out, err := execute(t, "run", "--capacity=5", "--items=2000", "--log-level=error")
	require.NoError(t, err)
	assert.Contains(t, out, "mode:        single (capacity 5)")
	assert.Contains(t, out, "delivered:   2,000 items")
}

func TestRun_LockedWithMetrics(t *testing.T) {
	out, err := execute(t, "run", "--mode=locked", "--producers=3", "--consumers=2",
		"--capacity=8", "--items=3000", "--metrics-addr=127.0.0.1:0", "--log-level=error")
	require.NoError(t, err)
	assert.Contains(t, out, "delivered:   3,000 items")
}

func TestRun_SPSC(t *testing.T) {
	out, err := execute(t, "run", "--mode=spsc", "--capacity=3", "--items=1000", "--log-format=json", "--log-level=warn")
	require.NoError(t, err)
	assert.Contains(t, out, "mode:        spsc")
}

func TestRun_InvalidCapacity(t *testing.T) {
	_, err := execute(t, "run", "--capacity=0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrInvalidCapacity))
}

func TestRun_RejectsArgs(t *testing.T) {
	_, err := execute(t, "run", "extra")
	assert.Error(t, err)
}
