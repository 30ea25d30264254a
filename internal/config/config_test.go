package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "MONGO_URI", "MONGO_DB", "SIM_TICK_SECONDS",
		"LOW_FUEL_THRESHOLD", "FUEL_ALERT_PROBABILITY", "FUEL_ALERT_POLICY",
		"MQTT_BROKER_URL", "MQTT_TOPIC",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":5001", cfg.HTTPAddr)
	assert.Equal(t, "", cfg.MongoURI)
	assert.Equal(t, "coaltrack", cfg.MongoDB)
	assert.Equal(t, 5*time.Second, cfg.SimTick)
	assert.Equal(t, 20.0, cfg.LowFuelThreshold)
	assert.Equal(t, 0.1, cfg.FuelAlertProbability)
	assert.Equal(t, "edge", cfg.FuelAlertPolicy)
	assert.Equal(t, "", cfg.MQTTBrokerURL)
	assert.Equal(t, "fleet/+/telemetry", cfg.MQTTTopic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SIM_TICK_SECONDS", "2")
	t.Setenv("LOW_FUEL_THRESHOLD", "15")
	t.Setenv("FUEL_ALERT_POLICY", "probabilistic")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, 2*time.Second, cfg.SimTick)
	assert.Equal(t, 15.0, cfg.LowFuelThreshold)
	assert.Equal(t, "probabilistic", cfg.FuelAlertPolicy)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("SIM_TICK_SECONDS", "soon")
	t.Setenv("LOW_FUEL_THRESHOLD", "low")

	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.SimTick)
	assert.Equal(t, 20.0, cfg.LowFuelThreshold)
}
