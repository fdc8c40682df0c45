package meter

import (
	"math"
	"sync/atomic"
)

// atomicFloat64 is a float64 cell with atomic load/store. Meter fields that
// are written by the tick driver and read by the render step are each
// individually atomic; the fields of one meter are not updated as a single
// transaction, which is an accepted relaxation for cosmetic readouts.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (f *atomicFloat64) Load() float64   { return math.Float64frombits(f.bits.Load()) }
func (f *atomicFloat64) Store(v float64) { f.bits.Store(math.Float64bits(v)) }
