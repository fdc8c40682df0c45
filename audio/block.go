package audio

import (
	math "github.com/chewxy/math32"
)

// NumChannels is the channel count this pipeline carries. Extra input
// channels are ignored at the capture boundary.
const NumChannels = 2

// Block is a two-channel snapshot of audio samples. A Block is owned by
// exactly one stage at a time: the producer fills a private block, the FIFO
// copies it into a slot, and the consumer drains slots into its own private
// block. Blocks are sized once and reused; no method allocates.
type Block struct {
	samples [NumChannels][]float32
	n       int
}

// NewBlock allocates a block that can hold up to maxSamples per channel.
func NewBlock(maxSamples int) *Block {
	b := &Block{}
	for ch := range b.samples {
		b.samples[ch] = make([]float32, maxSamples)
	}
	return b
}

// MaxSamples returns the per-channel capacity.
func (b *Block) MaxSamples() int { return len(b.samples[0]) }

// NumSamples returns the number of valid samples per channel.
func (b *Block) NumSamples() int { return b.n }

// Channel returns the valid span of channel ch.
func (b *Block) Channel(ch int) []float32 { return b.samples[ch][:b.n] }

// SetFromInterleaved fills the block from an interleaved capture frame with
// the given source channel count. Frames longer than the block capacity are
// truncated; source channels beyond the first two are skipped.
func (b *Block) SetFromInterleaved(in []float32, channels int) {
	if channels < 1 {
		b.n = 0
		return
	}
	n := len(in) / channels
	if n > b.MaxSamples() {
		n = b.MaxSamples()
	}
	b.n = n
	if channels == 1 {
		// duplicate mono input to both channels
		copy(b.samples[0][:n], in[:n])
		copy(b.samples[1][:n], in[:n])
		return
	}
	for i := 0; i < n; i++ {
		b.samples[0][i] = in[i*channels]
		b.samples[1][i] = in[i*channels+1]
	}
}

// CopyFrom copies the valid span of src into b. The blocks must have the
// same capacity.
func (b *Block) CopyFrom(src *Block) {
	b.n = src.n
	for ch := range b.samples {
		copy(b.samples[ch][:src.n], src.samples[ch][:src.n])
	}
}

// Magnitude returns the peak absolute sample of channel ch. Non-finite
// samples are skipped so a single bad sample cannot poison the meters.
func (b *Block) Magnitude(ch int) float32 {
	var peak float32
	for _, s := range b.samples[ch][:b.n] {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}
