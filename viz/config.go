// Package viz wires the transport, meters and stereo-image DSP together
// behind a tick-driven update orchestrator.
package viz

import (
	"encoding/json"
	"os"
)

// Parameters is the persisted, user-adjustable configuration. The json tags
// are the identifiers the persisted state blob has always used.
type Parameters struct {
	ThresholdDb        float64 `json:"thresholdValue"`
	DecayRate          float64 `json:"decayRate"` // dB per second
	AveragerIntervals  int     `json:"averagerIntervals"`
	PeakHoldEnabled    bool    `json:"peakHoldEnabled"`
	PeakHoldInf        bool    `json:"peakHoldInf"`
	PeakHoldDurationMs int     `json:"peakHoldDuration"`
	GoniometerScale    float64 `json:"goniometerScale"`
}

// DefaultParameters is a set of defaults that works well for peak metering.
var DefaultParameters = Parameters{
	ThresholdDb:        0,
	DecayRate:          12,
	AveragerIntervals:  6,
	PeakHoldEnabled:    true,
	PeakHoldInf:        false,
	PeakHoldDurationMs: 500,
	GoniometerScale:    1.0,
}

// SaveConfig writes the current parameters to the given file.
func (v *Visualizer) SaveConfig(conf string) error {
	fp, err := os.Create(conf)
	if err != nil {
		return err
	}
	defer fp.Close()
	params := v.Parameters()
	return json.NewEncoder(fp).Encode(&params)
}

// LoadConfig reads parameters from the given file and applies them through
// the setters. A missing file is not an error; the defaults stand.
func (v *Visualizer) LoadConfig(conf string) error {
	fp, err := os.Open(conf)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer fp.Close()
	params := v.Parameters()
	if err := json.NewDecoder(fp).Decode(&params); err != nil {
		return err
	}
	v.Apply(&params)
	return nil
}
