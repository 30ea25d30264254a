package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the process configuration, read from the environment.
type Config struct {
	// HTTP
	HTTPAddr string

	// MongoDB; an empty URI selects the in-memory store.
	MongoURI string
	MongoDB  string

	// Telemetry simulator
	SimTick              time.Duration
	LowFuelThreshold     float64
	FuelAlertProbability float64
	FuelAlertPolicy      string // "edge" or "probabilistic"

	// Optional MQTT telemetry bridge; disabled when the URL is empty.
	MQTTBrokerURL string
	MQTTTopic     string
}

// Load reads the configuration with defaults for everything.
func Load() *Config {
	return &Config{
		HTTPAddr:             getEnv("HTTP_ADDR", ":5001"),
		MongoURI:             getEnv("MONGO_URI", ""),
		MongoDB:              getEnv("MONGO_DB", "coaltrack"),
		SimTick:              time.Duration(getEnvInt("SIM_TICK_SECONDS", 5)) * time.Second,
		LowFuelThreshold:     getEnvFloat("LOW_FUEL_THRESHOLD", 20),
		FuelAlertProbability: getEnvFloat("FUEL_ALERT_PROBABILITY", 0.1),
		FuelAlertPolicy:      getEnv("FUEL_ALERT_POLICY", "edge"),
		MQTTBrokerURL:        getEnv("MQTT_BROKER_URL", ""),
		MQTTTopic:            getEnv("MQTT_TOPIC", "fleet/+/telemetry"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
