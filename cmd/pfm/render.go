package main

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/alexzahnaudio/pfmgo/meter"
	"github.com/alexzahnaudio/pfmgo/viz"
)

const barWidth = 48

// level zone colors, blended per cell in HCL space
var (
	zoneLow  = colorful.Color{R: 0.95, G: 0.60, B: 0.10} // orange
	zoneHigh = colorful.Color{R: 0.90, G: 0.10, B: 0.10} // red
)

// render waits for redraw requests and repaints the terminal meters until
// done closes. The heavy lifting already happened on the tick driver and
// the analysis worker; this only formats the latest snapshot.
func render(done chan struct{}, v *viz.Visualizer) {
	fmt.Print("\x1b[2J") // clear screen once
	for {
		select {
		case <-done:
			return
		case <-v.RedrawRequests():
			paint(v.Snapshot())
		}
	}
}

func paint(s viz.Snapshot) {
	var b strings.Builder
	b.WriteString("\x1b[H") // home

	channel(&b, "L", s.LeftDb, s.LeftHeldDb, s.LeftPeakDb, s.LeftAvgDb, s.LeftOverThreshold)
	channel(&b, "R", s.RightDb, s.RightHeldDb, s.RightPeakDb, s.RightAvgDb, s.RightOverThreshold)

	fmt.Fprintf(&b, "\n corr  peak %+5.2f  slow %+5.2f\x1b[K\n", s.CorrelationPeak, s.CorrelationSlow)

	b.WriteString(" hist  ")
	sparkline(&b, s.Histogram, 60)
	b.WriteString("\x1b[K\n")

	b.WriteString(" spec  ")
	sparkline(&b, s.Spectrum, len(s.Spectrum))
	b.WriteString("\x1b[K\n")

	fmt.Print(b.String())
}

func channel(b *strings.Builder, name string, db, held, peak, avg float64, over bool) {
	fmt.Fprintf(b, " %s  ", name)
	bar(b, db, peak)
	text := fmt.Sprintf("%6.1f", held)
	if held <= meter.NegativeInfinityDb {
		text = "  -inf"
	}
	if over {
		fmt.Fprintf(b, " \x1b[41m%s\x1b[0m", text)
	} else {
		fmt.Fprintf(b, " %s", text)
	}
	fmt.Fprintf(b, "  avg %6.1f\x1b[K\n", avg)
}

// bar draws a dB level bar with the decaying peak marker overlaid.
func bar(b *strings.Builder, db, peak float64) {
	fill := cell(db)
	mark := cell(peak)
	for i := 0; i < barWidth; i++ {
		switch {
		case i == mark && mark > 0:
			b.WriteString("\x1b[97m|\x1b[0m")
		case i < fill:
			c := zoneLow.BlendHcl(zoneHigh, float64(i)/float64(barWidth)).Clamped()
			r, g, bl := c.RGB255()
			fmt.Fprintf(b, "\x1b[38;2;%d;%d;%dm█\x1b[0m", r, g, bl)
		default:
			b.WriteString("─")
		}
	}
}

// cell maps a dB value onto a bar cell index.
func cell(db float64) int {
	frac := (meter.ClampDb(db) - meter.NegativeInfinityDb) / (meter.MaxDb - meter.NegativeInfinityDb)
	i := int(frac * float64(barWidth))
	if i >= barWidth {
		i = barWidth - 1
	}
	return i
}

// sparkline compresses a value series into width unicode block characters.
func sparkline(b *strings.Builder, data []float64, width int) {
	if len(data) == 0 || width < 1 {
		return
	}
	blocks := []rune(" ▁▂▃▄▅▆▇█")
	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max-min < 1e-9 {
		max = min + 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	for i := 0; i+step <= len(data); i += step {
		peak := data[i]
		for _, v := range data[i : i+step] {
			if v > peak {
				peak = v
			}
		}
		idx := int((peak - min) / (max - min) * float64(len(blocks)-1))
		b.WriteRune(blocks[idx])
	}
}
