package meter

import "sync/atomic"

// TraceBuffer is the circular buffer behind the scrolling histogram. It has
// exactly one writer, and the reader always consumes the entire span per
// read: a full scan starting at ReadIndex and wrapping once yields the
// contents oldest to newest, ending at the most recent write. With that
// contract an atomic write cursor is all the synchronization needed.
type TraceBuffer struct {
	data       []float64
	writeIndex atomic.Int64
}

// NewTraceBuffer creates a buffer of n slots filled with fill.
func NewTraceBuffer(n int, fill float64) *TraceBuffer {
	t := &TraceBuffer{}
	t.Resize(n, fill)
	return t
}

// Resize reallocates the buffer to n slots filled with fill and resets the
// cursor. Non-positive sizes get a single slot.
func (t *TraceBuffer) Resize(n int, fill float64) {
	if n < 1 {
		n = 1
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = fill
	}
	t.data = data
	t.writeIndex.Store(0)
}

// Clear re-fills the buffer with fill and resets the cursor.
func (t *TraceBuffer) Clear(fill float64) {
	for i := range t.data {
		t.data[i] = fill
	}
	t.writeIndex.Store(0)
}

// Write overwrites the slot at the cursor and advances it, evicting the
// oldest sample once the buffer has wrapped.
func (t *TraceBuffer) Write(v float64) {
	i := t.writeIndex.Load()
	t.data[i] = v

	i++
	if i >= int64(len(t.data)) {
		i = 0
	}
	t.writeIndex.Store(i)
}

// ReadIndex returns the index of the oldest sample: the slot immediately
// after the most recently written one, which is where the cursor now
// points. Scanning a full span from here, wrapping once, ends at the most
// recent write.
func (t *TraceBuffer) ReadIndex() int {
	return int(t.writeIndex.Load())
}

// Data returns the raw backing slice in storage order.
func (t *TraceBuffer) Data() []float64 { return t.data }

// Size returns the buffer capacity.
func (t *TraceBuffer) Size() int { return len(t.data) }

// Ordered appends the full span in chronological order to dst and returns
// the result. Pass a slice with adequate capacity to avoid allocation.
func (t *TraceBuffer) Ordered(dst []float64) []float64 {
	r := t.ReadIndex()
	dst = append(dst, t.data[r:]...)
	dst = append(dst, t.data[:r]...)
	return dst
}
