package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/realtime"
)

func TestVehicles_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	env.seedVehicle(t, "truck-001")
	env.seedVehicle(t, "truck-002")

	w := env.do(t, "GET", "/api/vehicles", "")
	require.Equal(t, http.StatusOK, w.Code)
	var vehicles []models.Vehicle
	decode(t, w, &vehicles)
	assert.Len(t, vehicles, 2)

	w = env.do(t, "GET", "/api/vehicles/truck-001", "")
	require.Equal(t, http.StatusOK, w.Code)
	var v models.Vehicle
	decode(t, w, &v)
	assert.Equal(t, "truck-001", v.ID)
	assert.Equal(t, "Test Hauler", v.Name)

	w = env.do(t, "GET", "/api/vehicles/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVehicles_Positions(t *testing.T) {
	env := newTestEnv(t)
	env.seedVehicle(t, "truck-001")

	w := env.do(t, "GET", "/api/vehicles/positions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var positions []map[string]interface{}
	decode(t, w, &positions)
	require.Len(t, positions, 1)
	for _, key := range []string{"id", "name", "type", "position", "status", "speed", "fuel", "last_update"} {
		assert.Contains(t, positions[0], key)
	}
	assert.Equal(t, "truck-001", positions[0]["id"])
}

func TestVehicles_UpdateLocationBroadcasts(t *testing.T) {
	env := newTestEnv(t)
	env.seedVehicle(t, "truck-001")

	watcher := &fakeSub{}
	env.hub.Join(watcher, realtime.ChannelTracking)

	w := env.do(t, "PUT", "/api/vehicles/truck-001/location",
		`{"location":{"lat":41.5,"lng":-75.2},"speed":45}`)
	require.Equal(t, http.StatusOK, w.Code)

	var v models.Vehicle
	decode(t, w, &v)
	assert.Equal(t, models.Coordinates{Lat: 41.5, Lng: -75.2}, v.CurrentLocation)
	assert.Equal(t, 45.0, v.Speed)

	events := watcher.received()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventVehicleLocationUpdated, events[0].Type)
}

func TestVehicles_UpdateLocationValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedVehicle(t, "truck-001")

	w := env.do(t, "PUT", "/api/vehicles/truck-001/location", `{"speed":45}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "PUT", "/api/vehicles/truck-001/location", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "PUT", "/api/vehicles/missing/location", `{"location":{"lat":0,"lng":0}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVehicles_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	env.seedVehicle(t, "truck-001")

	w := env.do(t, "PUT", "/api/vehicles/truck-001/status", `{"status":"maintenance"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var v models.Vehicle
	decode(t, w, &v)
	assert.Equal(t, models.VehicleMaintenance, v.Status)

	w = env.do(t, "PUT", "/api/vehicles/truck-001/status", `{"status":"warp-speed"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The rejected status must not have been applied.
	w = env.do(t, "GET", "/api/vehicles/truck-001", "")
	decode(t, w, &v)
	assert.Equal(t, models.VehicleMaintenance, v.Status)
}

func TestVehicles_Metrics(t *testing.T) {
	env := newTestEnv(t)
	env.seedVehicle(t, "truck-001")

	w := env.do(t, "GET", "/api/vehicles/truck-001/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var metrics map[string]float64
	decode(t, w, &metrics)
	for _, key := range []string{"efficiency", "fuel_consumption", "average_speed", "uptime", "maintenance_score"} {
		assert.Contains(t, metrics, key)
	}
	assert.Equal(t, 85.0, metrics["maintenance_score"], "score follows maintenance status")
	assert.GreaterOrEqual(t, metrics["efficiency"], 80.0)
	assert.LessOrEqual(t, metrics["efficiency"], 100.0)

	w = env.do(t, "GET", "/api/vehicles/missing/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
