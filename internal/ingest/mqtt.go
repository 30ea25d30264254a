// Package ingest bridges externally published vehicle telemetry into
// the store and the broadcast hub. Real vehicles (or the field
// gateways in front of them) publish position reports over MQTT; the
// bridge applies each report exactly like an observer-originated
// location update.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/realtime"
)

// Bridge subscribes to a telemetry topic and applies each report.
type Bridge struct {
	actions *realtime.Actions
	client  mqtt.Client
}

// NewBridge creates a bridge over the shared mutation actions.
func NewBridge(actions *realtime.Actions) *Bridge {
	return &Bridge{actions: actions}
}

type telemetryReport struct {
	VehicleID string              `json:"vehicle_id"`
	Location  *models.Coordinates `json:"location"`
	Speed     *float64            `json:"speed"`
}

// Start connects to the broker and subscribes. Telemetry is lossy by
// nature: bad or unknown reports are logged and dropped.
func (b *Bridge) Start(brokerURL, topic string) error {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("coaltrack-ingest").
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	b.client = mqtt.NewClient(opts)
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	if token := b.client.Subscribe(topic, 0, b.handle); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe %q: %w", topic, token.Error())
	}
	log.WithFields(log.Fields{
		"broker": brokerURL,
		"topic":  topic,
	}).Info("MQTT telemetry bridge started")
	return nil
}

// Stop disconnects from the broker.
func (b *Bridge) Stop() {
	if b.client != nil {
		b.client.Disconnect(250)
	}
}

func (b *Bridge) handle(_ mqtt.Client, msg mqtt.Message) {
	var report telemetryReport
	if err := json.Unmarshal(msg.Payload(), &report); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("Dropping malformed telemetry")
		return
	}
	if report.VehicleID == "" || report.Location == nil {
		log.WithField("topic", msg.Topic()).Warn("Dropping telemetry without vehicle_id or location")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := b.actions.UpdateVehicleLocation(ctx, report.VehicleID, *report.Location, report.Speed); err != nil {
		log.WithError(err).WithField("vehicle_id", report.VehicleID).Warn("Dropping telemetry report")
	}
}
