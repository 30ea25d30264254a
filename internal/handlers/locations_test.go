package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackdiamond/coaltrack/internal/models"
)

func TestLocations_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	env.seedLocation(t, "mine-001", 50000, 32000)

	w := env.do(t, "GET", "/api/locations", "")
	require.Equal(t, http.StatusOK, w.Code)
	var locations []models.Location
	decode(t, w, &locations)
	assert.Len(t, locations, 1)

	w = env.do(t, "GET", "/api/locations/mine-001", "")
	require.Equal(t, http.StatusOK, w.Code)
	var l models.Location
	decode(t, w, &l)
	assert.Equal(t, 32000.0, l.CurrentStock)

	w = env.do(t, "GET", "/api/locations/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLocations_UpdateStockClamped(t *testing.T) {
	env := newTestEnv(t)
	env.seedLocation(t, "mine-001", 50000, 32000)

	w := env.do(t, "PUT", "/api/locations/mine-001/stock", `{"stock":40000}`)
	require.Equal(t, http.StatusOK, w.Code)
	var l models.Location
	decode(t, w, &l)
	assert.Equal(t, 40000.0, l.CurrentStock)

	// Over capacity clamps down, below zero clamps up.
	w = env.do(t, "PUT", "/api/locations/mine-001/stock", `{"stock":99999999}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &l)
	assert.Equal(t, 50000.0, l.CurrentStock)

	w = env.do(t, "PUT", "/api/locations/mine-001/stock", `{"stock":-5}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &l)
	assert.Equal(t, 0.0, l.CurrentStock)

	w = env.do(t, "PUT", "/api/locations/mine-001/stock", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "stock is required")
}

func TestLocations_Utilization(t *testing.T) {
	env := newTestEnv(t)
	env.seedLocation(t, "mine-001", 50000, 32000)
	env.seedLocation(t, "plant-001", 10000, 9500)
	env.seedLocation(t, "hub-001", 10000, 7500)

	for id, want := range map[string]string{
		"mine-001":  "normal",
		"hub-001":   "warning",
		"plant-001": "critical",
	} {
		w := env.do(t, "GET", "/api/locations/"+id+"/utilization", "")
		require.Equal(t, http.StatusOK, w.Code)
		var u models.Utilization
		decode(t, w, &u)
		assert.Equal(t, want, u.Status, id)
	}

	w := env.do(t, "GET", "/api/locations/plant-001/utilization", "")
	var u models.Utilization
	decode(t, w, &u)
	assert.Equal(t, 95.0, u.Percentage)
	assert.Equal(t, 500.0, u.Available)
}
