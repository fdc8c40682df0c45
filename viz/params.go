package viz

import (
	"time"

	"github.com/alexzahnaudio/pfmgo/meter"
)

// Configuration setters. Each setter clamps its input to a sane range and
// applies it to the owning state machines directly; there is no observer
// graph between the configuration store and the meters.

// SetThreshold sets the over-threshold boundary, in dB, for both channels.
func (v *Visualizer) SetThreshold(db float64) {
	db = meter.ClampDb(db)
	v.paramsMu.Lock()
	v.params.ThresholdDb = db
	v.paramsMu.Unlock()

	v.left.text.SetThreshold(db)
	v.right.text.SetThreshold(db)
}

// SetDecayRate sets the peak-marker fall speed in dB per second.
func (v *Visualizer) SetDecayRate(dbPerSecond float64) {
	if dbPerSecond < 0 {
		dbPerSecond = 0
	} else if dbPerSecond > 96 {
		dbPerSecond = 96
	}
	v.paramsMu.Lock()
	v.params.DecayRate = dbPerSecond
	v.paramsMu.Unlock()

	v.left.peak.SetDecayRate(dbPerSecond)
	v.right.peak.SetDecayRate(dbPerSecond)
}

// SetAveragerIntervals resizes the averaging window, in tick intervals.
// The resize itself is staged and performed by the next Tick, so the
// window is only ever mutated from the tick-driver context.
func (v *Visualizer) SetAveragerIntervals(n int) {
	if n < 1 {
		n = 1
	} else if n > 1024 {
		n = 1024
	}
	v.paramsMu.Lock()
	v.params.AveragerIntervals = n
	v.paramsMu.Unlock()

	v.pendingAvgSize.Store(int64(n))
}

// SetPeakHoldEnabled toggles peak hold. Disabling is expressed as a zero
// hold duration, so held values collapse to the live value on the next
// tick; enabling restores the configured duration.
func (v *Visualizer) SetPeakHoldEnabled(enabled bool) {
	v.paramsMu.Lock()
	v.params.PeakHoldEnabled = enabled
	ms := v.params.PeakHoldDurationMs
	v.paramsMu.Unlock()

	v.applyHoldDuration(enabled, ms)
}

// SetPeakHoldDuration sets how long peaks are held, in milliseconds.
func (v *Visualizer) SetPeakHoldDuration(ms int) {
	if ms < 0 {
		ms = 0
	}
	v.paramsMu.Lock()
	v.params.PeakHoldDurationMs = ms
	enabled := v.params.PeakHoldEnabled
	v.paramsMu.Unlock()

	v.applyHoldDuration(enabled, ms)
}

func (v *Visualizer) applyHoldDuration(enabled bool, ms int) {
	d := time.Duration(ms) * time.Millisecond
	if !enabled {
		d = 0
	}
	v.left.text.SetHoldDuration(d)
	v.right.text.SetHoldDuration(d)
	v.left.peak.SetHoldTime(d)
	v.right.peak.SetHoldTime(d)
}

// SetPeakHoldForever toggles infinite hold on all holders.
func (v *Visualizer) SetPeakHoldForever(forever bool) {
	v.paramsMu.Lock()
	v.params.PeakHoldInf = forever
	v.paramsMu.Unlock()

	v.left.text.SetHoldForever(forever)
	v.right.text.SetHoldForever(forever)
	v.left.peak.SetHoldForever(forever)
	v.right.peak.SetHoldForever(forever)
}

// SetGoniometerScale sets the input gain applied before the mid/side
// transform.
func (v *Visualizer) SetGoniometerScale(s float64) {
	v.gonio.SetScale(s)
	v.paramsMu.Lock()
	v.params.GoniometerScale = v.gonio.Scale()
	v.paramsMu.Unlock()
}

// Apply runs every parameter through its setter, clamping as it goes.
func (v *Visualizer) Apply(p *Parameters) {
	v.SetThreshold(p.ThresholdDb)
	v.SetDecayRate(p.DecayRate)
	v.SetAveragerIntervals(p.AveragerIntervals)
	v.SetPeakHoldDuration(p.PeakHoldDurationMs)
	v.SetPeakHoldEnabled(p.PeakHoldEnabled)
	v.SetPeakHoldForever(p.PeakHoldInf)
	v.SetGoniometerScale(p.GoniometerScale)
}

// Parameters returns a copy of the current (clamped) parameters.
func (v *Visualizer) Parameters() Parameters {
	v.paramsMu.Lock()
	defer v.paramsMu.Unlock()
	return v.params
}

// ResetHolds reinitializes every holder to the dB floor, e.g. on a user
// "reset hold" action.
func (v *Visualizer) ResetHolds() {
	v.left.text.Reset()
	v.right.text.Reset()
	v.left.peak.Reset()
	v.right.peak.Reset()
}

// ClearHistogram wipes the scrolling trace back to the dB floor. The wipe
// is staged and performed by the next Tick; the trace has exactly one
// writer and the tick driver is it.
func (v *Visualizer) ClearHistogram() {
	v.pendingHistClear.Store(true)
}
