// Package spectrum computes a banded log-power spectrum of the drained
// audio block, giving the level meters a companion frequency readout.
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync/atomic"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/alexzahnaudio/pfmgo/audio"
)

const (
	minBandHz = 32.0
	maxBandHz = 16000.0
)

// Analyzer turns blocks into log-spaced band levels. Update runs on the
// analysis worker; Levels is safe from any context.
type Analyzer struct {
	sampleRate float64
	size       int

	win     []float64
	scratch []float64
	edges   []int

	levels atomic.Pointer[[]float64]
}

// NewAnalyzer creates an analyzer over FFT frames of the given size with
// the given number of log-spaced output bands.
func NewAnalyzer(sampleRate float64, size, bands int) (*Analyzer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("spectrum: invalid sample rate %v", sampleRate)
	}
	if size < 16 {
		return nil, fmt.Errorf("spectrum: frame size %d too small", size)
	}
	if bands < 1 || bands > size/2 {
		return nil, fmt.Errorf("spectrum: band count %d out of range", bands)
	}

	a := &Analyzer{
		sampleRate: sampleRate,
		size:       size,
		win:        window.Hamming(size),
		scratch:    make([]float64, size),
		edges:      bandEdges(sampleRate, size, bands),
	}
	initial := make([]float64, bands)
	a.levels.Store(&initial)
	return a, nil
}

// bandEdges maps logarithmically spaced frequency edges onto FFT bins.
func bandEdges(sampleRate float64, size, bands int) []int {
	nyquist := sampleRate / 2
	maxHz := maxBandHz
	if maxHz > nyquist {
		maxHz = nyquist
	}
	ratio := maxHz / minBandHz

	edges := make([]int, bands+1)
	for k := 0; k <= bands; k++ {
		f := minBandHz * math.Pow(ratio, float64(k)/float64(bands))
		bin := int(math.Round(f * float64(size) / sampleRate))
		if k > 0 && bin <= edges[k-1] {
			bin = edges[k-1] + 1
		}
		if bin > size/2 {
			bin = size / 2
		}
		edges[k] = bin
	}
	return edges
}

// NumBands returns the number of output bands.
func (a *Analyzer) NumBands() int { return len(a.edges) - 1 }

// Update computes band levels from the mono mix of the block. Blocks
// shorter than the frame size are zero-padded.
func (a *Analyzer) Update(b *audio.Block) {
	n := b.NumSamples()
	if n > a.size {
		n = a.size
	}
	left := b.Channel(0)
	right := b.Channel(1)

	for i := 0; i < n; i++ {
		m := float64(left[i]+right[i]) / 2
		if math.IsNaN(m) || math.IsInf(m, 0) {
			m = 0
		}
		a.scratch[i] = m
	}
	for i := n; i < a.size; i++ {
		a.scratch[i] = 0
	}
	floats.Mul(a.scratch, a.win)

	F := fft.FFTReal(a.scratch)

	N := float64(a.size)
	levels := make([]float64, a.NumBands())
	for k := range levels {
		lo, hi := a.edges[k], a.edges[k+1]
		sum := 0.0
		for bin := lo; bin < hi; bin++ {
			f := F[bin]
			sum += math.Log1p(real(cmplx.Conj(f)*f) / N)
		}
		levels[k] = sum / float64(hi-lo)
	}

	a.levels.Store(&levels)
}

// Levels returns the most recent band levels. Callers must treat the slice
// as read-only.
func (a *Analyzer) Levels() []float64 {
	return *a.levels.Load()
}
