package viz

import (
	"github.com/alexzahnaudio/pfmgo/stereo"
)

// Snapshot is the read surface consumed by the render step (and published
// to remote listeners). Every field is a copy; the snapshot stays valid
// after the meters move on.
type Snapshot struct {
	LeftDb  float64 `json:"leftDb"`
	RightDb float64 `json:"rightDb"`

	LeftHeldDb  float64 `json:"leftHeldDb"`
	RightHeldDb float64 `json:"rightHeldDb"`

	LeftPeakDb  float64 `json:"leftPeakDb"`
	RightPeakDb float64 `json:"rightPeakDb"`

	LeftAvgDb  float64 `json:"leftAvgDb"`
	RightAvgDb float64 `json:"rightAvgDb"`

	LeftOverThreshold  bool `json:"leftOver"`
	RightOverThreshold bool `json:"rightOver"`

	CorrelationPeak float64 `json:"correlationPeak"`
	CorrelationSlow float64 `json:"correlationSlow"`

	// Histogram is the full trace span in chronological order, oldest
	// first.
	Histogram []float64 `json:"histogram"`

	// Goniometer is the mapped stereo-image path of the last analyzed
	// block.
	Goniometer []stereo.Point `json:"goniometer"`

	// Spectrum is the banded log-power readout of the last analyzed block.
	Spectrum []float64 `json:"spectrum"`
}

// Snapshot assembles the current meter state. The individual fields are
// each atomically consistent but the set is not transactional; a snapshot
// may mix a just-applied sample with a one-tick-old average, which is fine
// for a cosmetic readout.
func (v *Visualizer) Snapshot() Snapshot {
	return Snapshot{
		LeftDb:  v.left.text.CurrentValue(),
		RightDb: v.right.text.CurrentValue(),

		LeftHeldDb:  v.left.text.HeldValue(),
		RightHeldDb: v.right.text.HeldValue(),

		LeftPeakDb:  v.left.peak.HeldValue(),
		RightPeakDb: v.right.peak.HeldValue(),

		LeftAvgDb:  v.left.avg.Average(),
		RightAvgDb: v.right.avg.Average(),

		LeftOverThreshold:  v.left.text.IsOverThreshold(),
		RightOverThreshold: v.right.text.IsOverThreshold(),

		CorrelationPeak: v.corr.Peak(),
		CorrelationSlow: v.corr.Slow(),

		Histogram:  v.histogram.Ordered(make([]float64, 0, v.histogram.Size())),
		Goniometer: v.gonio.Path(),
		Spectrum:   v.spec.Levels(),
	}
}
