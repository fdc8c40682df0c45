package stereo

import (
	"fmt"

	math "github.com/chewxy/math32"

	"github.com/alexzahnaudio/pfmgo/audio"
	"github.com/alexzahnaudio/pfmgo/meter"
)

const (
	// correlationCutoffHz sets the smoothing time constant of the
	// correlation estimate itself, independent of the display smoothing
	// below.
	correlationCutoffHz = 10.0
	// peakWindow and slowWindow are the display-side averager lengths, in
	// correlation samples.
	peakWindow = 512
	slowWindow = 4096
)

// CorrelationMeter estimates the phase correlation between the two
// channels: +1 for identical signals, -1 for polarity-inverted ones, near 0
// for uncorrelated material. Three identically designed lowpass filters
// smooth L*R, L^2 and R^2; the quotient is the correlation coefficient,
// which then feeds a fast "peak" averager and a long "slow" averager.
//
// Process runs on the analysis worker; Peak and Slow are safe from any
// context.
type CorrelationMeter struct {
	lr, ll, rr *Lowpass

	peakAverager *meter.Averager
	slowAverager *meter.Averager
}

// NewCorrelationMeter designs the filters for the given sample rate.
func NewCorrelationMeter(sampleRate float64) (*CorrelationMeter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("stereo: invalid sample rate %v", sampleRate)
	}
	return &CorrelationMeter{
		lr:           NewLowpass(correlationCutoffHz, sampleRate),
		ll:           NewLowpass(correlationCutoffHz, sampleRate),
		rr:           NewLowpass(correlationCutoffHz, sampleRate),
		peakAverager: meter.NewAverager(peakWindow, 0),
		slowAverager: meter.NewAverager(slowWindow, 0),
	}, nil
}

// Process feeds every sample of the block through the correlation math.
// Non-finite input samples count as silence, and a vanishing denominator
// substitutes a coefficient of 0 rather than propagating NaN.
func (c *CorrelationMeter) Process(b *audio.Block) {
	n := b.NumSamples()
	left := b.Channel(0)
	right := b.Channel(1)

	for i := 0; i < n; i++ {
		l := left[i]
		r := right[i]
		if math.IsNaN(l) || math.IsInf(l, 0) {
			l = 0
		}
		if math.IsNaN(r) || math.IsInf(r, 0) {
			r = 0
		}

		numerator := c.lr.Process(l * r)
		denominator := math.Sqrt(c.ll.Process(l*l) * c.rr.Process(r*r))
		corr := numerator / denominator

		if math.IsNaN(corr) || math.IsInf(corr, 0) {
			corr = 0
		}

		c.peakAverager.Add(float64(corr))
		c.slowAverager.Add(float64(corr))
	}
}

// Peak returns the fast correlation readout.
func (c *CorrelationMeter) Peak() float64 { return c.peakAverager.Average() }

// Slow returns the settled correlation readout.
func (c *CorrelationMeter) Slow() float64 { return c.slowAverager.Average() }

// Reset clears the filters and both averagers.
func (c *CorrelationMeter) Reset() {
	c.lr.Reset()
	c.ll.Reset()
	c.rr.Reset()
	c.peakAverager.Clear(0)
	c.slowAverager.Clear(0)
}
