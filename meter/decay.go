package meter

import (
	"sync/atomic"
	"time"
)

// DecayingValueHolder is the envelope follower behind the visual peak
// marker. It latches every new maximum immediately and, once the hold time
// has elapsed, lets the marker fall linearly at the configured dB/second
// until it reaches the floor.
//
// Update and Tick run on the tick-driver context; HeldValue may be read
// from the render step.
type DecayingValueHolder struct {
	held         atomicFloat64
	holdTime     atomic.Int64 // nanoseconds
	holdForever  atomic.Bool
	decayPerTick atomicFloat64

	tickInterval time.Duration
	peakTime     time.Time
}

// NewDecayingValueHolder creates a holder at the dB floor. tickInterval is
// the period Tick will be driven at; it pre-scales the decay rate.
func NewDecayingValueHolder(tickInterval time.Duration, holdTime time.Duration) *DecayingValueHolder {
	h := &DecayingValueHolder{tickInterval: tickInterval}
	h.held.Store(NegativeInfinityDb)
	h.SetHoldTime(holdTime)
	return h
}

// Update latches v when it exceeds the held value. No threshold test: this
// holder follows the signal envelope unconditionally.
func (h *DecayingValueHolder) Update(v float64, now time.Time) {
	if v > h.held.Load() {
		h.held.Store(ClampDb(v))
		h.peakTime = now
	}
}

// Tick decays the held value by one step when the hold window has elapsed.
// The value never decays below the floor and never increases here.
func (h *DecayingValueHolder) Tick(now time.Time) {
	if h.holdForever.Load() {
		return
	}
	if now.Sub(h.peakTime) <= time.Duration(h.holdTime.Load()) {
		return
	}
	h.held.Store(ClampDb(h.held.Load() - h.decayPerTick.Load()))
}

// SetDecayRate sets the fall speed in dB per second, pre-scaled by the
// tick interval. Negative rates clamp to zero; decay never moves upward.
func (h *DecayingValueHolder) SetDecayRate(dbPerSecond float64) {
	if dbPerSecond < 0 {
		dbPerSecond = 0
	}
	h.decayPerTick.Store(dbPerSecond * h.tickInterval.Seconds())
}

// SetHoldTime sets how long a peak is held before decay starts. Negative
// durations clamp to zero.
func (h *DecayingValueHolder) SetHoldTime(d time.Duration) {
	if d < 0 {
		d = 0
	}
	h.holdTime.Store(int64(d))
}

// SetHoldForever toggles infinite hold. Turning it off resets the held
// value to the floor so a stale infinite-hold peak cannot linger.
func (h *DecayingValueHolder) SetHoldForever(forever bool) {
	was := h.holdForever.Swap(forever)
	if was && !forever {
		h.Reset()
	}
}

// Reset drops the held value to the dB floor.
func (h *DecayingValueHolder) Reset() {
	h.held.Store(NegativeInfinityDb)
}

// HeldValue returns the current marker position.
func (h *DecayingValueHolder) HeldValue() float64 { return h.held.Load() }
