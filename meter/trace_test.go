package meter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraceBufferFullSpanInWriteOrder(t *testing.T) {
	tb := NewTraceBuffer(5, 0)
	for i := 1; i <= 5; i++ {
		tb.Write(float64(i))
	}

	require.Equal(t, []float64{1, 2, 3, 4, 5}, tb.Ordered(nil))
}

func TestTraceBufferEvictsOldest(t *testing.T) {
	tb := NewTraceBuffer(5, 0)
	for i := 1; i <= 6; i++ {
		tb.Write(float64(i))
	}

	got := tb.Ordered(nil)
	require.Equal(t, []float64{2, 3, 4, 5, 6}, got)
	require.NotContains(t, got, 1.0)
}

func TestTraceBufferReadIndexContract(t *testing.T) {
	tb := NewTraceBuffer(4, 0)
	tb.Write(10)
	tb.Write(20)

	// a manual scan from ReadIndex, wrapping once, ends at the newest
	r := tb.ReadIndex()
	data := tb.Data()
	var scan []float64
	for i := 0; i < tb.Size(); i++ {
		scan = append(scan, data[(r+i)%tb.Size()])
	}
	require.Equal(t, []float64{0, 0, 10, 20}, scan)
}

func TestTraceBufferClear(t *testing.T) {
	tb := NewTraceBuffer(3, 0)
	tb.Write(1)
	tb.Write(2)
	tb.Clear(NegativeInfinityDb)

	require.Equal(t,
		[]float64{NegativeInfinityDb, NegativeInfinityDb, NegativeInfinityDb},
		tb.Ordered(nil))
	require.Equal(t, 0, tb.ReadIndex())
}

func TestTraceBufferResize(t *testing.T) {
	tb := NewTraceBuffer(3, 0)
	tb.Write(1)
	tb.Resize(8, -1)

	require.Equal(t, 8, tb.Size())
	for _, v := range tb.Data() {
		require.Equal(t, -1.0, v)
	}
}

func TestTraceBufferDegenerateSize(t *testing.T) {
	tb := NewTraceBuffer(0, 0)
	require.Equal(t, 1, tb.Size())
	tb.Write(5)
	require.Equal(t, []float64{5}, tb.Ordered(nil))
}
