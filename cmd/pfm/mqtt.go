package main

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/alexzahnaudio/pfmgo/viz"
)

const publishInterval = 100 * time.Millisecond

// publishSnapshots streams meter snapshots to an mqtt topic until done
// closes. Publishing is best-effort: a slow broker drops frames, it never
// backs up the meters.
func publishSnapshots(done chan struct{}, v *viz.Visualizer, broker, topic string) {
	client := mqtt.NewClient(mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("pfm"))
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		glog.Error("could not connect to mqtt broker: ", token.Error())
		return
	}
	defer client.Disconnect(250)
	glog.Info("connected to mqtt broker")

	ticker := time.NewTicker(publishInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			bs, err := json.Marshal(v.Snapshot())
			if err != nil {
				glog.Error("snapshot marshal: ", err)
				continue
			}
			token := client.Publish(topic, 0, false, bs)
			token.WaitTimeout(10 * time.Millisecond)
			if err := token.Error(); err != nil && glog.V(2) {
				glog.Info("publish failed: ", err)
			}
		}
	}
}
