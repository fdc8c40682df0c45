package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Config represents a config that is used to open a new capture Source.
type Config struct {
	// BlockSize is the number of samples per channel in each capture block.
	BlockSize int
	// Channels is the number of input channels to open.
	Channels int
	// SampleRate is the sample rate (Fs).
	SampleRate float64
}

// NewSource initializes a streaming capture source with portaudio and
// returns a channel of interleaved frames. Errors are delivered on the
// second channel; the source stops when ctx is cancelled.
func NewSource(ctx context.Context, cfg *Config) (<-chan []float32, <-chan error) {
	out := make(chan []float32)
	errc := make(chan error, 1)
	done := ctx.Done()

	go func() {
		defer close(out)

		portaudio.Initialize()
		defer portaudio.Terminate()

		in := make([]float32, cfg.BlockSize*cfg.Channels)

		stream, err := portaudio.OpenDefaultStream(
			cfg.Channels, 0, cfg.SampleRate, cfg.BlockSize, in)
		if err != nil {
			errc <- fmt.Errorf("error opening stream: %v", err)
			return
		}
		defer stream.Close()
		if err := stream.Start(); err != nil {
			errc <- fmt.Errorf("error starting stream: %v", err)
			return
		}

		for {
			select {
			case <-done:
				return
			default:
			}

			if err := stream.Read(); err != nil {
				errc <- fmt.Errorf("error reading from stream: %v", err)
				return
			}

			out <- in
		}
	}()

	return out, errc
}
