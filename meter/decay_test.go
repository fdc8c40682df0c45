package meter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const tick = 100 * time.Millisecond

func TestDecayingHolderLatchesPeaks(t *testing.T) {
	h := NewDecayingValueHolder(tick, 200*time.Millisecond)
	h.SetDecayRate(10)

	h.Update(-20, t0)
	require.InDelta(t, -20, h.HeldValue(), 1e-9)

	// lower values do not move the marker
	h.Update(-40, t0.Add(tick))
	require.InDelta(t, -20, h.HeldValue(), 1e-9)

	h.Update(-3, t0.Add(2*tick))
	require.InDelta(t, -3, h.HeldValue(), 1e-9)
}

func TestDecayingHolderLinearDecayToFloor(t *testing.T) {
	h := NewDecayingValueHolder(tick, 200*time.Millisecond)
	h.SetDecayRate(10) // 10 dB/s at 100ms ticks = exactly 1 dB per tick

	h.Update(-60, t0)

	// inside the hold window nothing decays
	h.Tick(t0.Add(tick))
	h.Tick(t0.Add(2 * tick))
	require.InDelta(t, -60, h.HeldValue(), 1e-9)

	// each tick past the window takes exactly one decay step
	now := t0.Add(3 * tick)
	for want := -61.0; want >= NegativeInfinityDb; want-- {
		h.Tick(now)
		require.InDelta(t, want, h.HeldValue(), 1e-9)
		now = now.Add(tick)
	}

	// pinned at the floor
	h.Tick(now)
	h.Tick(now.Add(tick))
	require.InDelta(t, NegativeInfinityDb, h.HeldValue(), 1e-9)
}

func TestDecayingHolderCeilingClamp(t *testing.T) {
	h := NewDecayingValueHolder(tick, 0)
	h.Update(100, t0)
	require.InDelta(t, MaxDb, h.HeldValue(), 1e-9)
}

func TestDecayingHolderSetDecayRateScaling(t *testing.T) {
	h := NewDecayingValueHolder(tick, 0)
	h.SetDecayRate(24)
	h.Update(0, t0)

	h.Tick(t0.Add(tick))
	require.InDelta(t, -2.4, h.HeldValue(), 1e-9)
}

func TestDecayingHolderHoldForeverToggle(t *testing.T) {
	h := NewDecayingValueHolder(tick, 0)
	h.SetDecayRate(10)
	h.SetHoldForever(true)

	h.Update(6, t0)
	h.Tick(t0.Add(time.Hour))
	require.InDelta(t, 6, h.HeldValue(), 1e-9)

	// turning infinite hold off must not leave the stale peak behind
	h.SetHoldForever(false)
	require.InDelta(t, NegativeInfinityDb, h.HeldValue(), 1e-9)
}

func TestDecayingHolderNegativeRateClamps(t *testing.T) {
	h := NewDecayingValueHolder(tick, 0)
	h.SetDecayRate(-5)
	h.Update(0, t0)

	h.Tick(t0.Add(tick))
	// decay never moves the value upward
	require.InDelta(t, 0, h.HeldValue(), 1e-9)
}
