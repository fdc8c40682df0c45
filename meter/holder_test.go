package meter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Unix(1000, 0)

func TestValueHolderThresholdLifecycle(t *testing.T) {
	h := NewValueHolder(500 * time.Millisecond)
	h.SetThreshold(0)

	// peak over threshold
	changed := h.Update(6, t0)
	require.True(t, changed)
	require.True(t, h.IsOverThreshold())
	require.InDelta(t, 6, h.HeldValue(), 1e-9)

	// signal falls silent; held value persists through the hold window
	h.Update(NegativeInfinityDb, t0.Add(50*time.Millisecond))
	h.Tick(t0.Add(400 * time.Millisecond))
	require.True(t, h.IsOverThreshold())
	require.InDelta(t, 6, h.HeldValue(), 1e-9)

	// hold window elapses: held snaps to current, over-threshold clears
	h.Tick(t0.Add(600 * time.Millisecond))
	require.False(t, h.IsOverThreshold())
	require.InDelta(t, NegativeInfinityDb, h.HeldValue(), 1e-9)
}

func TestValueHolderTieRefreshesPeak(t *testing.T) {
	h := NewValueHolder(100 * time.Millisecond)

	require.True(t, h.Update(3, t0))
	// a tie refreshes the peak timer but the held value does not change
	require.False(t, h.Update(3, t0.Add(90*time.Millisecond)))

	// 150ms after the tie is still inside the refreshed window
	h.Tick(t0.Add(150 * time.Millisecond))
	require.InDelta(t, 3, h.HeldValue(), 1e-9)
}

func TestValueHolderSmallerValueKeepsHold(t *testing.T) {
	h := NewValueHolder(time.Second)
	h.Update(5, t0)
	require.False(t, h.Update(2, t0.Add(10*time.Millisecond)))
	require.InDelta(t, 5, h.HeldValue(), 1e-9)
	require.InDelta(t, 2, h.CurrentValue(), 1e-9)
}

func TestValueHolderSetThresholdRecomputesImmediately(t *testing.T) {
	h := NewValueHolder(time.Second)
	h.SetThreshold(0)
	h.Update(-3, t0)
	require.False(t, h.IsOverThreshold())

	// no tick needed
	h.SetThreshold(-6)
	require.True(t, h.IsOverThreshold())
}

func TestValueHolderZeroDurationCollapses(t *testing.T) {
	h := NewValueHolder(0)
	h.Update(6, t0)
	h.Update(-12, t0.Add(time.Millisecond))
	h.Tick(t0.Add(2 * time.Millisecond))
	require.InDelta(t, -12, h.HeldValue(), 1e-9)
}

func TestValueHolderHoldForever(t *testing.T) {
	h := NewValueHolder(10 * time.Millisecond)
	h.SetHoldForever(true)
	h.Update(6, t0)
	h.Update(NegativeInfinityDb, t0.Add(time.Millisecond))

	h.Tick(t0.Add(time.Hour))
	require.InDelta(t, 6, h.HeldValue(), 1e-9)
}

func TestValueHolderNegativeDurationClamps(t *testing.T) {
	h := NewValueHolder(-time.Second)
	h.Update(6, t0)
	h.Update(0, t0.Add(time.Millisecond))
	h.Tick(t0.Add(2 * time.Millisecond))
	require.InDelta(t, 0, h.HeldValue(), 1e-9)
}

func TestValueHolderReset(t *testing.T) {
	h := NewValueHolder(time.Second)
	h.SetThreshold(0)
	h.Update(6, t0)
	h.Reset()
	require.InDelta(t, NegativeInfinityDb, h.HeldValue(), 1e-9)
	require.InDelta(t, NegativeInfinityDb, h.CurrentValue(), 1e-9)
	require.False(t, h.IsOverThreshold())
}
