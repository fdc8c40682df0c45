// Pfm is a stereo peak-metering visualizer: it captures audio, meters
// peak/average levels with hold and decay, and renders a histogram,
// goniometer and correlation readout in the terminal. Parameters are
// adjustable over a graphql endpoint and snapshots can be published to
// MQTT.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"

	"github.com/alexzahnaudio/pfmgo/audio"
	"github.com/alexzahnaudio/pfmgo/viz"
)

var (
	blockSize  = flag.Int("block-size", 512, "samples per channel per capture block")
	sampleRate = flag.Float64("sample-rate", 48000, "capture sample rate")
	refresh    = flag.Int("refresh", 60, "display refresh rate in Hz")

	listDevices = flag.Bool("list-devices", false, "print audio devices and exit")

	confPath = flag.String("config", "pfm.json", "path to the persisted parameter file")
	httpAddr = flag.String("http", "", "host:port for the graphql parameter endpoint")

	mqttBroker = flag.String("mqtt-broker", "", "mqtt broker URI to publish snapshots to")
	mqttTopic  = flag.String("mqtt-topic", "pfm/meters", "mqtt topic for snapshots")
)

func main() {
	flag.Parse()

	if *listDevices {
		portaudio.Initialize()
		err := audio.PrintDevices()
		portaudio.Terminate()
		if err != nil {
			glog.Exit(err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	var stop sync.Once

	v, err := viz.New(&viz.Config{
		SampleRate:   *sampleRate,
		MaxBlockSize: *blockSize,
		RefreshRate:  *refresh,
	})
	if err != nil {
		glog.Exit(err)
	}
	if err := v.LoadConfig(*confPath); err != nil {
		glog.Warning("could not load config: ", err)
	}

	source, errc := audio.NewSource(ctx, &audio.Config{
		BlockSize:  *blockSize,
		Channels:   audio.NumChannels,
		SampleRate: *sampleRate,
	})

	// watch for capture errors
	go func() {
		err := <-errc
		glog.Error(err)
		stop.Do(func() { close(done) })
	}()

	audio.Blocks(done, source, audio.NumChannels, v.Fifo())

	v.Start()
	defer v.Stop()

	go func() {
		ticker := time.NewTicker(v.TickInterval())
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				v.Tick(now)
			}
		}
	}()

	if *httpAddr != "" {
		go serveGraphql(v, *httpAddr)
	}
	if *mqttBroker != "" {
		go publishSnapshots(done, v, *mqttBroker, *mqttTopic)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		if err := v.SaveConfig(*confPath); err != nil {
			glog.Warning("could not save config: ", err)
		}
		cancel()
		stop.Do(func() { close(done) })
	}()

	render(done, v)
}

func serveGraphql(v *viz.Visualizer, addr string) {
	http.HandleFunc("/api/v1/graphql", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		vars := map[string]interface{}{}
		if r.Body != nil {
			if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
				apolloQuery := make(map[string]interface{})
				if err := json.Unmarshal(body, &apolloQuery); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				if q, ok := apolloQuery["query"].(string); ok {
					query = q
				}
				if vs, ok := apolloQuery["variables"].(map[string]interface{}); ok {
					vars = vs
				}
			}
		}
		res := v.Query(query, vars)
		for _, err := range res.Errors {
			glog.Error(err)
		}
		json.NewEncoder(w).Encode(res)
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		glog.Error("graphql endpoint failed: ", err)
	}
}
