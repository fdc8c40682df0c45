package meter

import "sync/atomic"

// Averager keeps a running mean over the last N values added. Add subtracts
// the slot being overwritten from the running sum, so the sum always equals
// the sum of the live window without rescanning it.
//
// Add, Resize and Clear are all writer-context methods and must share a
// single context; Average may be read from another.
type Averager struct {
	elements   []float64
	writeIndex atomic.Int64
	sum        atomicFloat64
	avg        atomicFloat64
}

// NewAverager creates an averager over a window of n values, pre-filled
// with initial. n must be positive; a non-positive n gets a window of 1.
func NewAverager(n int, initial float64) *Averager {
	a := &Averager{}
	a.Resize(n, initial)
	return a
}

// Resize re-fills the window with fill and resets the cursor and sum. Old
// history is discarded, not interpolated; callers typically pass the last
// known average so the readout doesn't jump.
func (a *Averager) Resize(n int, fill float64) {
	if n < 1 {
		n = 1
	}
	a.elements = make([]float64, n)
	a.Clear(fill)
}

// Clear re-fills the window with fill.
func (a *Averager) Clear(fill float64) {
	for i := range a.elements {
		a.elements[i] = fill
	}
	a.writeIndex.Store(0)
	a.sum.Store(fill * float64(len(a.elements)))
	a.avg.Store(fill)
}

// Add overwrites the oldest slot with v and updates the running mean.
func (a *Averager) Add(v float64) {
	i := a.writeIndex.Load()
	sum := a.sum.Load()

	sum -= a.elements[i]
	sum += v
	a.elements[i] = v

	i++
	if i >= int64(len(a.elements)) {
		i = 0
	}

	a.writeIndex.Store(i)
	a.sum.Store(sum)
	a.avg.Store(sum / float64(len(a.elements)))
}

// Average returns the mean of the current window.
func (a *Averager) Average() float64 { return a.avg.Load() }

// Size returns the window length.
func (a *Averager) Size() int { return len(a.elements) }
