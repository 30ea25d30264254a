package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackdiamond/coaltrack/internal/alerts"
	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/realtime"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// fakeSub records realtime events delivered to it.
type fakeSub struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (f *fakeSub) Send(evt realtime.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return true
}

func (f *fakeSub) received() []realtime.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]realtime.Event(nil), f.events...)
}

// testEnv wires the REST routes against an in-memory store, the same
// shape main assembles in production.
type testEnv struct {
	mux    *http.ServeMux
	store  store.Store
	alerts *alerts.Manager
	hub    *realtime.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.NewMemory()
	hub := realtime.NewHub()
	manager := alerts.NewManager(st)
	actions := realtime.NewActions(st, manager, hub)

	mux := http.NewServeMux()
	NewVehicleHandler(st, actions).Register(mux)
	NewShipmentHandler(st, actions).Register(mux)
	NewLocationHandler(st).Register(mux)
	NewAlertHandler(manager).Register(mux)

	return &testEnv{mux: mux, store: st, alerts: manager, hub: hub}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func (e *testEnv) seedVehicle(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, e.store.InsertVehicle(context.Background(), models.Vehicle{
		ID:              id,
		Name:            "Test Hauler",
		Type:            "truck",
		CurrentLocation: models.Coordinates{Lat: 40.0, Lng: -74.0},
		Status:          models.VehicleActive,
		Fuel:            80,
		Speed:           60,
		Maintenance:     models.Maintenance{Status: "good"},
	}))
}

func (e *testEnv) seedLocation(t *testing.T, id string, capacity, stock float64) {
	t.Helper()
	require.NoError(t, e.store.InsertLocation(context.Background(), models.Location{
		ID:           id,
		Name:         "Test Facility",
		Type:         models.LocationMine,
		Capacity:     capacity,
		CurrentStock: stock,
	}))
}
