package meter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGainToDecibels(t *testing.T) {
	require.InDelta(t, 0, GainToDecibels(1), 1e-9)
	require.InDelta(t, -20, GainToDecibels(0.1), 1e-9)
	require.InDelta(t, 6.0206, GainToDecibels(2), 1e-3)
}

func TestGainToDecibelsFloor(t *testing.T) {
	require.Equal(t, NegativeInfinityDb, GainToDecibels(0))
	require.Equal(t, NegativeInfinityDb, GainToDecibels(-1))
	require.Equal(t, NegativeInfinityDb, GainToDecibels(1e-12))
	require.Equal(t, NegativeInfinityDb, GainToDecibels(math.NaN()))
	require.Equal(t, NegativeInfinityDb, GainToDecibels(math.Inf(1)))
}

func TestClampDb(t *testing.T) {
	require.Equal(t, NegativeInfinityDb, ClampDb(-100))
	require.Equal(t, MaxDb, ClampDb(40))
	require.Equal(t, -3.0, ClampDb(-3))
}
