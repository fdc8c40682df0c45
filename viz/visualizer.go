package viz

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/graphql-go/graphql"

	"github.com/alexzahnaudio/pfmgo/audio"
	"github.com/alexzahnaudio/pfmgo/meter"
	"github.com/alexzahnaudio/pfmgo/spectrum"
	"github.com/alexzahnaudio/pfmgo/stereo"
)

// Config sizes the pipeline before streaming begins.
type Config struct {
	// SampleRate is the host sample rate (Fs).
	SampleRate float64
	// MaxBlockSize is the largest per-channel block the host will deliver.
	MaxBlockSize int
	// RefreshRate is the tick rate in Hz the orchestrator will be driven
	// at. Defaults to 60.
	RefreshRate int
	// FifoSlots is the transport depth. Defaults to audio.DefaultFifoSlots.
	FifoSlots int
	// HistogramSize is the trace buffer length. Defaults to 512.
	HistogramSize int
	// GoniometerRadius is the pixel radius the trace maps onto. Defaults
	// to the unit circle.
	GoniometerRadius float32
	// SpectrumBands is the number of spectrum readout bands. Defaults
	// to 24.
	SpectrumBands int
	// Parameters are the initial user parameters. Defaults to
	// DefaultParameters.
	Parameters *Parameters
}

// channelMeter is one channel's trio of meter states: the text readout
// holder, the decaying peak marker, and the averaged level.
type channelMeter struct {
	text *meter.ValueHolder
	peak *meter.DecayingValueHolder
	avg  *meter.Averager
}

// Visualizer is the update orchestrator. The audio producer pushes blocks
// into Fifo(); Tick, driven at the refresh rate, drains the transport,
// advances the meter state machines and wakes the analysis worker for the
// heavier per-sample DSP. The render side reads Snapshot() whenever a
// redraw request arrives.
type Visualizer struct {
	tickInterval time.Duration

	fifo    *audio.Fifo
	scratch *audio.Block

	left, right channelMeter
	histogram   *meter.TraceBuffer

	gonio *stereo.Goniometer
	corr  *stereo.CorrelationMeter
	spec  *spectrum.Analyzer

	// analysis is the worker's private copy of the last drained block,
	// guarded by analysisMu. The tick driver only hands over a new block
	// when the worker isn't mid-pass; a busy worker means this tick's
	// block is skipped and the backlog collapses to one more pass.
	analysis   *audio.Block
	analysisMu sync.Mutex

	wake   chan struct{}
	redraw chan struct{}
	done   chan struct{}

	// configuration changes that would touch tick-owned meter state are
	// staged here and applied at the top of Tick. The averager window and
	// the trace each have exactly one writer, and the tick driver is it;
	// the config context never mutates them directly.
	pendingAvgSize   atomic.Int64
	pendingHistClear atomic.Bool

	paramsMu sync.Mutex
	params   Parameters

	schema graphql.Schema
}

// New builds a visualizer sized for the negotiated sample rate and block
// size, and applies the initial parameters.
func New(cfg *Config) (*Visualizer, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("viz: invalid sample rate %v", cfg.SampleRate)
	}
	if cfg.MaxBlockSize < 1 {
		return nil, fmt.Errorf("viz: invalid block size %d", cfg.MaxBlockSize)
	}
	refresh := cfg.RefreshRate
	if refresh <= 0 {
		refresh = 60
	}
	slots := cfg.FifoSlots
	if slots == 0 {
		slots = audio.DefaultFifoSlots
	}
	histSize := cfg.HistogramSize
	if histSize <= 0 {
		histSize = 512
	}
	bands := cfg.SpectrumBands
	if bands <= 0 {
		bands = 24
	}
	params := DefaultParameters
	if cfg.Parameters != nil {
		params = *cfg.Parameters
	}

	fifo, err := audio.NewFifo(slots, cfg.MaxBlockSize)
	if err != nil {
		return nil, err
	}
	corr, err := stereo.NewCorrelationMeter(cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	spec, err := spectrum.NewAnalyzer(cfg.SampleRate, fftSize(cfg.MaxBlockSize), bands)
	if err != nil {
		return nil, err
	}

	tickInterval := time.Second / time.Duration(refresh)
	newChannel := func() channelMeter {
		return channelMeter{
			text: meter.NewValueHolder(500 * time.Millisecond),
			peak: meter.NewDecayingValueHolder(tickInterval, 500*time.Millisecond),
			avg:  meter.NewAverager(DefaultParameters.AveragerIntervals, meter.NegativeInfinityDb),
		}
	}

	v := &Visualizer{
		tickInterval: tickInterval,
		fifo:         fifo,
		scratch:      audio.NewBlock(cfg.MaxBlockSize),
		left:         newChannel(),
		right:        newChannel(),
		histogram:    meter.NewTraceBuffer(histSize, meter.NegativeInfinityDb),
		gonio:        stereo.NewGoniometer(cfg.GoniometerRadius),
		corr:         corr,
		spec:         spec,
		analysis:     audio.NewBlock(cfg.MaxBlockSize),
		wake:         make(chan struct{}, 1),
		redraw:       make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	v.Apply(&params)
	if err := v.InitGraphql(); err != nil {
		return nil, err
	}
	return v, nil
}

// fftSize picks the analysis frame: the smallest power of two holding a
// full block, at least 256.
func fftSize(blockSize int) int {
	n := 256
	for n < blockSize {
		n <<= 1
	}
	return n
}

// Fifo returns the transport the audio producer pushes into.
func (v *Visualizer) Fifo() *audio.Fifo { return v.fifo }

// TickInterval returns the period Tick is expected to be driven at.
func (v *Visualizer) TickInterval() time.Duration { return v.tickInterval }

// Start launches the analysis worker.
func (v *Visualizer) Start() {
	go v.analysisLoop()
}

// Stop terminates the analysis worker. The visualizer must not be ticked
// after Stop.
func (v *Visualizer) Stop() {
	close(v.done)
}

// Tick advances the whole pipeline by one refresh interval. The hold state
// machines advance on every tick; transport draining and analysis only
// happen when the producer has delivered data. now is injected so tests
// can drive synthetic time.
func (v *Visualizer) Tick(now time.Time) {
	v.applyPending()

	v.left.text.Tick(now)
	v.right.text.Tick(now)
	v.left.peak.Tick(now)
	v.right.peak.Tick(now)

	if v.fifo.AvailableForRead() == 0 {
		return
	}

	// Drain everything; only the last block is analyzed. Metering is
	// presentation-rate, so a backlog coalesces into one pass.
	drained := 0
	for v.fifo.Pull(v.scratch) {
		drained++
	}
	if glog.V(3) {
		glog.Infof("tick drained %d block(s)", drained)
	}

	magLeft := float64(v.scratch.Magnitude(0))
	magRight := float64(v.scratch.Magnitude(1))
	dbLeft := meter.GainToDecibels(magLeft)
	dbRight := meter.GainToDecibels(magRight)

	v.left.text.Update(dbLeft, now)
	v.left.peak.Update(dbLeft, now)
	v.left.avg.Add(dbLeft)

	v.right.text.Update(dbRight, now)
	v.right.peak.Update(dbRight, now)
	v.right.avg.Add(dbRight)

	v.histogram.Write(meter.GainToDecibels((magLeft + magRight) / 2))

	if v.analysisMu.TryLock() {
		v.analysis.CopyFrom(v.scratch)
		v.analysisMu.Unlock()
		select {
		case v.wake <- struct{}{}:
		default:
		}
	}

	v.requestRedraw()
}

// applyPending applies staged configuration changes on the tick context.
// The last computed average seeds a resized window so the readout doesn't
// jump.
func (v *Visualizer) applyPending() {
	if n := int(v.pendingAvgSize.Swap(0)); n > 0 {
		v.left.avg.Resize(n, v.left.avg.Average())
		v.right.avg.Resize(n, v.right.avg.Average())
	}
	if v.pendingHistClear.Swap(false) {
		v.histogram.Clear(meter.NegativeInfinityDb)
	}
}

// analysisLoop performs the heavier per-sample DSP off the tick driver:
// goniometer path construction, correlation filtering, spectrum analysis.
func (v *Visualizer) analysisLoop() {
	for {
		select {
		case <-v.done:
			return
		case <-v.wake:
			v.analysisMu.Lock()
			v.gonio.Update(v.analysis)
			v.corr.Process(v.analysis)
			v.spec.Update(v.analysis)
			v.analysisMu.Unlock()
			v.requestRedraw()
		}
	}
}

// requestRedraw is fire-and-forget: pending requests coalesce, and nothing
// ever blocks on the render side.
func (v *Visualizer) requestRedraw() {
	select {
	case v.redraw <- struct{}{}:
	default:
	}
}

// RedrawRequests returns the channel the render loop should wait on.
func (v *Visualizer) RedrawRequests() <-chan struct{} { return v.redraw }
