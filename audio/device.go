package audio

import (
	"bytes"
	"text/template"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

var deviceTmpl = template.Must(template.New("").Parse(
	`{{. | len}} host APIs: {{range .}}
	Name:                   {{.Name}}
	{{if .DefaultInputDevice}}Default input device:   {{.DefaultInputDevice.Name}}{{end}}
	{{if .DefaultOutputDevice}}Default output device:  {{.DefaultOutputDevice.Name}}{{end}}
	Devices: {{range .Devices}}
		Name:                      {{.Name}}
		MaxInputChannels:          {{.MaxInputChannels}}
		DefaultLowInputLatency:    {{.DefaultLowInputLatency}}
		DefaultHighInputLatency:   {{.DefaultHighInputLatency}}
		DefaultSampleRate:         {{.DefaultSampleRate}}
	{{end}}
{{end}}`,
))

// PrintDevices logs the host's audio input inventory using deviceTmpl.
// portaudio must already be initialized by the caller.
func PrintDevices() error {
	hs, err := portaudio.HostApis()
	if err != nil {
		return err
	}
	buf := bytes.NewBuffer(nil)
	if err := deviceTmpl.Execute(buf, hs); err != nil {
		return err
	}
	glog.Info(buf.String())
	return nil
}
