// Package stereo implements the stereo-image DSP: the mid/side goniometer
// trace and the phase-correlation meter.
package stereo

import (
	math "github.com/chewxy/math32"
)

// Lowpass is a causal one-pole lowpass filter. The coefficient is designed
// once from the sample rate and cutoff; processing is a single multiply-add
// per sample.
type Lowpass struct {
	alpha float32
	state float32
}

// NewLowpass designs a one-pole lowpass with the given cutoff. A cutoff at
// or above Nyquist degenerates to a pass-through.
func NewLowpass(cutoffHz, sampleRate float64) *Lowpass {
	if cutoffHz <= 0 || sampleRate <= 0 || cutoffHz >= sampleRate/2 {
		return &Lowpass{alpha: 1}
	}
	alpha := 1 - math.Exp(-2*math.Pi*float32(cutoffHz/sampleRate))
	return &Lowpass{alpha: alpha}
}

// Process feeds one sample through the filter and returns the output.
func (f *Lowpass) Process(x float32) float32 {
	f.state += f.alpha * (x - f.state)
	return f.state
}

// Reset zeroes the filter state.
func (f *Lowpass) Reset() { f.state = 0 }
