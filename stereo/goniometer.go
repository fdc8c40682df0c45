package stereo

import (
	gomath "math"
	"sync/atomic"

	math "github.com/chewxy/math32"

	"github.com/alexzahnaudio/pfmgo/audio"
)

// multiplying L+R and L-R by 1/sqrt(2) gives equal power, i.e. -3dB
const invSqrtOf2 = 0.70710678

// Point is a mapped goniometer coordinate relative to the scope center.
// X is the side axis, Y the mid axis.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Goniometer builds the stereo-image trace: per sample, the mid/side
// transform of the (scaled) input mapped onto a circle of the configured
// radius. Update runs on the analysis worker; Path and the scale accessors
// are safe from any context.
type Goniometer struct {
	radius float32
	scale  atomic.Uint64 // float64 bits, written by configuration
	path   atomic.Pointer[[]Point]

	// carried across samples within one Update pass
	prevX, prevY float32
}

// NewGoniometer creates a goniometer mapping onto [-radius, radius].
// Non-positive radii get the canonical unit radius.
func NewGoniometer(radius float32) *Goniometer {
	if radius <= 0 {
		radius = 1
	}
	g := &Goniometer{radius: radius}
	g.SetScale(1)
	empty := []Point{}
	g.path.Store(&empty)
	return g
}

// SetScale sets the user-adjustable input gain applied to L and R before
// the transform. Values are clamped to [0, 10].
func (g *Goniometer) SetScale(s float64) {
	if s < 0 {
		s = 0
	} else if s > 10 {
		s = 10
	}
	g.scale.Store(gomath.Float64bits(s))
}

// Scale returns the current input gain.
func (g *Goniometer) Scale() float64 {
	return gomath.Float64frombits(g.scale.Load())
}

// Radius returns the mapping radius.
func (g *Goniometer) Radius() float32 { return g.radius }

// Update rebuilds the trace from the block. Non-finite samples repeat the
// previous valid point (the first sample falls back to the origin), and
// points outside the circle are clamped radially to its boundary so the
// direction survives even when the magnitude is off the chart.
func (g *Goniometer) Update(b *audio.Block) {
	n := b.NumSamples()
	left := b.Channel(0)
	right := b.Channel(1)
	scale := float32(g.Scale())

	pts := make([]Point, n)
	g.prevX, g.prevY = 0, 0

	for i := 0; i < n; i++ {
		l := left[i] * scale
		r := right[i] * scale

		mid := (l + r) * invSqrtOf2
		side := (l - r) * invSqrtOf2

		x := side * g.radius
		y := mid * g.radius

		if math.IsNaN(l) || math.IsNaN(r) || math.IsInf(l, 0) || math.IsInf(r, 0) {
			x, y = g.prevX, g.prevY
		}

		if d := math.Sqrt(x*x + y*y); d > g.radius {
			k := g.radius / d
			x *= k
			y *= k
		}

		pts[i] = Point{X: x, Y: y}
		g.prevX, g.prevY = x, y
	}

	g.path.Store(&pts)
}

// Path returns the most recently built trace. Callers must treat the slice
// as read-only; a new slice is published on every Update.
func (g *Goniometer) Path() []Point {
	return *g.path.Load()
}
