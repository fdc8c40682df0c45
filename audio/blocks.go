package audio

import (
	"github.com/golang/glog"
)

// Blocks bridges a capture source into the transport. Each interleaved
// frame received from in is deinterleaved into a private block and pushed
// onto the fifo. A full fifo means the consumer has fallen behind; the
// frame is dropped, which is expected under load and only costs a
// visualization frame.
func Blocks(done chan struct{}, in <-chan []float32, channels int, fifo *Fifo) {
	go func() {
		block := NewBlock(fifo.slots[0].MaxSamples())
		for {
			select {
			case <-done:
				return
			case x := <-in:
				if x == nil {
					return
				}
				block.SetFromInterleaved(x, channels)
				if !fifo.Push(block) && glog.V(2) {
					glog.Info("transport full, frame dropped")
				}
			}
		}
	}()
}
