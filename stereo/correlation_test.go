package stereo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/alexzahnaudio/pfmgo/audio"
)

func stereoBlock(t *testing.T, left, right []float32) *audio.Block {
	t.Helper()
	require.Equal(t, len(left), len(right))
	in := make([]float32, 2*len(left))
	for i := range left {
		in[2*i] = left[i]
		in[2*i+1] = right[i]
	}
	b := audio.NewBlock(len(left))
	b.SetFromInterleaved(in, 2)
	return b
}

func sine(n int, freq, sampleRate, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return out
}

func TestCorrelationIdenticalChannels(t *testing.T) {
	c, err := NewCorrelationMeter(48000)
	require.NoError(t, err)

	s := sine(4096, 440, 48000, 0.5)
	c.Process(stereoBlock(t, s, s))

	require.InDelta(t, 1, c.Peak(), 0.05)
	require.Greater(t, c.Slow(), 0.5)
}

func TestCorrelationInvertedChannels(t *testing.T) {
	c, err := NewCorrelationMeter(48000)
	require.NoError(t, err)

	left := sine(4096, 440, 48000, 0.5)
	right := make([]float32, len(left))
	for i := range left {
		right[i] = -left[i]
	}
	c.Process(stereoBlock(t, left, right))

	require.InDelta(t, -1, c.Peak(), 0.05)
	require.Less(t, c.Slow(), -0.5)
}

func TestCorrelationUncorrelatedNoise(t *testing.T) {
	c, err := NewCorrelationMeter(48000)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	n := 48000
	left := make([]float32, n)
	right := make([]float32, n)
	lf := make([]float64, n)
	rf := make([]float64, n)
	for i := 0; i < n; i++ {
		lf[i] = 2*rng.Float64() - 1
		rf[i] = 2*rng.Float64() - 1
		left[i] = float32(lf[i])
		right[i] = float32(rf[i])
	}

	// sanity: the raw streams really are uncorrelated
	require.InDelta(t, 0, stat.Correlation(lf, rf, nil), 0.05)

	// feed in capture-sized blocks
	const block = 512
	for i := 0; i+block <= n; i += block {
		c.Process(stereoBlock(t, left[i:i+block], right[i:i+block]))
	}

	require.Less(t, math.Abs(c.Peak()), 0.5)
	require.Less(t, math.Abs(c.Slow()), 0.5)
}

func TestCorrelationSilenceSubstitutesZero(t *testing.T) {
	c, err := NewCorrelationMeter(48000)
	require.NoError(t, err)

	zero := make([]float32, 1024)
	c.Process(stereoBlock(t, zero, zero))

	require.Equal(t, 0.0, c.Peak())
	require.Equal(t, 0.0, c.Slow())
}

func TestCorrelationNonFiniteInput(t *testing.T) {
	c, err := NewCorrelationMeter(48000)
	require.NoError(t, err)

	nan := float32(math.NaN())
	left := []float32{0.5, nan, 0.5, 0.5}
	right := []float32{0.5, 0.5, nan, 0.5}
	c.Process(stereoBlock(t, left, right))

	require.False(t, math.IsNaN(c.Peak()))
	require.False(t, math.IsNaN(c.Slow()))
}

func TestCorrelationReset(t *testing.T) {
	c, err := NewCorrelationMeter(48000)
	require.NoError(t, err)

	s := sine(2048, 440, 48000, 0.5)
	c.Process(stereoBlock(t, s, s))
	require.NotEqual(t, 0.0, c.Peak())

	c.Reset()
	require.Equal(t, 0.0, c.Peak())
	require.Equal(t, 0.0, c.Slow())
}

func TestCorrelationInvalidSampleRate(t *testing.T) {
	_, err := NewCorrelationMeter(0)
	require.Error(t, err)
}
