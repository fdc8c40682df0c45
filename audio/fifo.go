package audio

import (
	"fmt"
	"sync/atomic"
)

// DefaultFifoSlots is the default transport depth. At 60 Hz consumption and
// typical host block sizes the consumer drains far faster than the producer
// fills, so six slots of headroom is plenty.
const DefaultFifoSlots = 6

// Fifo is a fixed-capacity single-producer single-consumer queue of whole
// audio blocks. Push never blocks and never allocates: the producer is the
// audio callback, and a dropped visualization frame is always preferable to
// an audio glitch. Pull never blocks either; an empty queue is a normal
// "nothing to do" state.
//
// The read and write cursors are monotonic counters; a slot index is the
// counter modulo the slot count. The producer only advances the write
// counter after its slot copy is complete, and the consumer only advances
// the read counter after its copy is complete, so a slot is never read and
// written at the same time. No locks.
type Fifo struct {
	slots []*Block
	read  atomic.Uint64
	write atomic.Uint64
}

// NewFifo creates a transport with numSlots pre-allocated blocks of
// maxSamples capacity each. numSlots must be at least 2.
func NewFifo(numSlots, maxSamples int) (*Fifo, error) {
	if numSlots < 2 {
		return nil, fmt.Errorf("audio: fifo needs at least 2 slots, got %d", numSlots)
	}
	if maxSamples < 1 {
		return nil, fmt.Errorf("audio: fifo block size must be positive, got %d", maxSamples)
	}
	f := &Fifo{slots: make([]*Block, numSlots)}
	for i := range f.slots {
		f.slots[i] = NewBlock(maxSamples)
	}
	return f, nil
}

// NumSlots returns the fixed capacity of the transport.
func (f *Fifo) NumSlots() int { return len(f.slots) }

// Push copies b into the next free slot. It reports false, without copying,
// when the transport is full. Producer context only.
func (f *Fifo) Push(b *Block) bool {
	w := f.write.Load()
	if w-f.read.Load() >= uint64(len(f.slots)) {
		return false
	}
	f.slots[w%uint64(len(f.slots))].CopyFrom(b)
	f.write.Store(w + 1)
	return true
}

// Pull copies the oldest queued block into out. It reports false when the
// transport is empty. Consumer context only.
func (f *Fifo) Pull(out *Block) bool {
	r := f.read.Load()
	if f.write.Load() == r {
		return false
	}
	out.CopyFrom(f.slots[r%uint64(len(f.slots))])
	f.read.Store(r + 1)
	return true
}

// AvailableForRead returns the number of queued blocks.
func (f *Fifo) AvailableForRead() int {
	return int(f.write.Load() - f.read.Load())
}

// AvailableSpace returns the number of free slots.
func (f *Fifo) AvailableSpace() int {
	return len(f.slots) - f.AvailableForRead()
}
