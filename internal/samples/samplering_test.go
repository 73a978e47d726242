package samples

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/internal/gen"
)

func TestSampleRing_Contract(t *testing.T) {
	var r SampleRing // zero value is usable
	assert.True(t, r.IsEmpty())
	assert.Equal(t, SampleRingCapacity, r.Cap())

	_, ok := r.Dequeue()
	assert.False(t, ok)

	for i := 0; i < SampleRingCapacity; i++ {
		require.NoError(t, r.Enqueue(float32(i)))
	}
	assert.True(t, r.IsFull())
	assert.ErrorIs(t, r.Enqueue(99), api.ErrFull)
	assert.Equal(t, SampleRingCapacity, r.Len())

	v, ok := r.Peek()
	require.True(t, ok)
	assert.Equal(t, float32(0), v)

	// Rotate past the end of the array twice.
	for i := SampleRingCapacity; i < 3*SampleRingCapacity; i++ {
		v, ok := r.Dequeue()
		require.True(t, ok)
		require.Equal(t, float32(i-SampleRingCapacity), v)
		require.NoError(t, r.Enqueue(float32(i)))
	}
	assert.Equal(t, (r.head+r.size)%SampleRingCapacity, r.tail)

	r.Clear()
	assert.True(t, r.IsEmpty())
	assert.Equal(t, [SampleRingCapacity]float32{}, r.data)
	require.NoError(t, r.Enqueue(1.5))
	assert.Equal(t, 1, r.tail)
}

func TestSampleRing_ZeroAlloc(t *testing.T) {
	r := NewSampleRing()
	allocs := testing.AllocsPerRun(100, func() {
		_ = r.Enqueue(1)
		r.Dequeue()
	})
	assert.Zero(t, allocs)
}

// TestSampleRing_MatchesGenerator keeps the checked-in file identical to
// what the generator emits for the go:generate directive in doc.go.
func TestSampleRing_MatchesGenerator(t *testing.T) {
	want, err := os.ReadFile("samplering_ring_gen.go")
	require.NoError(t, err)

	src, err := gen.Generate("samplering_ring_gen.go", gen.Params{
		Package:  "samples",
		TypeName: "SampleRing",
		ElemType: "float32",
		Capacity: 8,
		Dir:      ".",
	})
	require.NoError(t, err)
	assert.Equal(t, string(want), string(src))
}
