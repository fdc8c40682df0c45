package meter

import (
	"sync/atomic"
	"time"
)

// ValueHolder tracks the most recent value and holds on to the largest one
// seen for a configurable duration. It backs the numeric text readout of a
// meter: the held value is what gets displayed while the signal is over
// threshold, then it snaps back to the live value once the hold expires.
//
// Update and Tick run on the tick-driver context; the getters may be called
// from the render step. Time is injected so ticks can be driven with
// synthetic timestamps in tests.
type ValueHolder struct {
	threshold    atomicFloat64
	current      atomicFloat64
	held         atomicFloat64
	over         atomic.Bool
	holdDuration atomic.Int64 // nanoseconds
	holdForever  atomic.Bool

	peakTime time.Time
}

// NewValueHolder creates a holder initialized to the dB floor with the
// given hold duration.
func NewValueHolder(holdDuration time.Duration) *ValueHolder {
	h := &ValueHolder{}
	h.current.Store(NegativeInfinityDb)
	h.held.Store(NegativeInfinityDb)
	h.SetHoldDuration(holdDuration)
	return h
}

// Update records v as the current value. A value that meets or exceeds the
// held value refreshes the peak: ties count, so a sustained constant signal
// keeps its hold alive. Reports whether the held value actually changed.
func (h *ValueHolder) Update(v float64, now time.Time) bool {
	h.current.Store(v)

	held := h.held.Load()
	if v < held {
		return false
	}
	h.peakTime = now
	h.held.Store(v)
	h.over.Store(v > h.threshold.Load())
	return v != held
}

// Tick advances the hold state machine. Once the hold window has elapsed
// the held value snaps to the current value; with hold-forever set the held
// value never expires.
func (h *ValueHolder) Tick(now time.Time) {
	if h.holdForever.Load() {
		return
	}
	if now.Sub(h.peakTime) <= time.Duration(h.holdDuration.Load()) {
		return
	}
	cur := h.current.Load()
	h.held.Store(cur)
	h.over.Store(cur > h.threshold.Load())
}

// SetThreshold updates the threshold and recomputes the over-threshold
// state immediately, without waiting for the next tick.
func (h *ValueHolder) SetThreshold(db float64) {
	h.threshold.Store(db)
	h.over.Store(h.held.Load() > db)
}

// SetHoldDuration sets how long a peak is held. Negative durations clamp
// to zero, which makes the held value collapse to the current value on the
// very next tick; disabling hold is expressed exactly that way.
func (h *ValueHolder) SetHoldDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	h.holdDuration.Store(int64(d))
}

// SetHoldForever toggles infinite hold.
func (h *ValueHolder) SetHoldForever(forever bool) {
	h.holdForever.Store(forever)
}

// Reset reinitializes the holder to the dB floor.
func (h *ValueHolder) Reset() {
	h.current.Store(NegativeInfinityDb)
	h.held.Store(NegativeInfinityDb)
	h.over.Store(NegativeInfinityDb > h.threshold.Load())
}

// CurrentValue returns the most recently updated value.
func (h *ValueHolder) CurrentValue() float64 { return h.current.Load() }

// HeldValue returns the held peak value.
func (h *ValueHolder) HeldValue() float64 { return h.held.Load() }

// IsOverThreshold reports whether the held value exceeds the threshold.
func (h *ValueHolder) IsOverThreshold() bool { return h.over.Load() }
