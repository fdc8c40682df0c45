package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockSetFromInterleaved(t *testing.T) {
	b := NewBlock(4)
	b.SetFromInterleaved([]float32{1, -1, 2, -2, 3, -3}, 2)

	require.Equal(t, 3, b.NumSamples())
	require.Equal(t, []float32{1, 2, 3}, b.Channel(0))
	require.Equal(t, []float32{-1, -2, -3}, b.Channel(1))
}

func TestBlockMonoDuplication(t *testing.T) {
	b := NewBlock(4)
	b.SetFromInterleaved([]float32{0.5, 0.25}, 1)

	require.Equal(t, b.Channel(0), b.Channel(1))
}

func TestBlockExtraChannelsIgnored(t *testing.T) {
	b := NewBlock(4)
	// four-channel interleave: only the first two survive
	b.SetFromInterleaved([]float32{1, 2, 9, 9, 3, 4, 9, 9}, 4)

	require.Equal(t, []float32{1, 3}, b.Channel(0))
	require.Equal(t, []float32{2, 4}, b.Channel(1))
}

func TestBlockMagnitude(t *testing.T) {
	b := NewBlock(8)
	b.SetFromInterleaved([]float32{0.1, 0, -0.8, 0, 0.3, 0}, 2)

	require.InDelta(t, 0.8, b.Magnitude(0), 1e-6)
	require.Equal(t, float32(0), b.Magnitude(1))
}

func TestBlockMagnitudeSkipsNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	b := NewBlock(8)
	b.SetFromInterleaved([]float32{0.2, nan, nan, inf, -0.4, 0.1}, 2)

	require.InDelta(t, 0.4, b.Magnitude(0), 1e-6)
	require.InDelta(t, 0.1, b.Magnitude(1), 1e-6)
}

func TestBlockCopyFrom(t *testing.T) {
	src := NewBlock(4)
	src.SetFromInterleaved([]float32{1, 2, 3, 4}, 2)

	dst := NewBlock(4)
	dst.CopyFrom(src)

	require.Equal(t, src.NumSamples(), dst.NumSamples())
	require.Equal(t, src.Channel(0), dst.Channel(0))
	require.Equal(t, src.Channel(1), dst.Channel(1))

	// the copy is private: mutating the source must not alias
	src.Channel(0)[0] = 99
	require.Equal(t, float32(1), dst.Channel(0)[0])
}
