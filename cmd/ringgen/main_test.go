package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/api"
)

func TestRun_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ring_gen.go")
	err := run([]string{"--type", "Bytes", "--elem", "byte", "--capacity", "64", "--package", "buf", "-o", out})
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package buf")
	assert.Contains(t, string(src), "const BytesCapacity = 64")
}

func TestRun_RejectsZeroCapacity(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ring_gen.go")
	err := run([]string{"--type", "Bytes", "--elem", "byte", "--package", "buf", "-o", out})
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrInvalidCapacity))
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no file may be written on rejection")
}

func TestRun_ResolvesElementInPackage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frame.go"), []byte("package buf\n\ntype Frame struct{}\n"), 0o644))
	out := filepath.Join(dir, "frames_ring_gen.go")

	require.NoError(t, run([]string{"--type", "Frames", "--elem", "*Frame", "--capacity", "4", "--package", "buf", "-o", out}))
	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(src), "data [FramesCapacity]*Frame")

	// Regenerating skips the previous output when collecting declarations.
	require.NoError(t, run([]string{"--type", "Frames", "--elem", "*Frame", "--capacity", "4", "--package", "buf", "-o", out}))
}

func TestRun_RejectsUnresolvableDeclaration(t *testing.T) {
	for name, args := range map[string][]string{
		"undeclared element": {"--type", "Ring", "--elem", "T", "--capacity", "4", "--package", "buf"},
		"blank package":      {"--type", "Ring", "--elem", "int", "--capacity", "4", "--package", "_"},
		"blank type":         {"--type", "_", "--elem", "int", "--capacity", "4", "--package", "buf"},
	} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "ring_gen.go")
			err := run(append(args, "-o", out))
			assert.ErrorIs(t, err, api.ErrInvalidArgument)
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "no file may be written on rejection")
		})
	}
}

func TestRun_BadFlag(t *testing.T) {
	assert.Error(t, run([]string{"--capacity", "many"}))
}
