// Package meter implements the level-metering state machines: a windowed
// averager, peak-hold value holders, and the circular trace buffer behind
// the scrolling histogram. All values are decibels unless noted otherwise.
package meter

import "math"

const (
	// NegativeInfinityDb is the floor of the display range. Silence maps
	// here instead of -Inf so every downstream value stays finite.
	NegativeInfinityDb = -66.0
	// MaxDb is the ceiling of the display range.
	MaxDb = 12.0
)

// GainToDecibels converts a linear magnitude to decibels, flooring at
// NegativeInfinityDb. Zero and non-finite magnitudes map to the floor.
func GainToDecibels(gain float64) float64 {
	if gain <= 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return NegativeInfinityDb
	}
	db := 20 * math.Log10(gain)
	if db < NegativeInfinityDb {
		return NegativeInfinityDb
	}
	return db
}

// ClampDb limits v to the displayable [NegativeInfinityDb, MaxDb] range.
func ClampDb(v float64) float64 {
	if v < NegativeInfinityDb {
		return NegativeInfinityDb
	}
	if v > MaxDb {
		return MaxDb
	}
	return v
}
