package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackdiamond/coaltrack/internal/models"
)

func TestAlerts_ListOpenOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a1, err := env.alerts.Create(ctx, models.AlertFuel, models.SeverityWarning, "low fuel", "truck-001")
	require.NoError(t, err)
	_, err = env.alerts.Create(ctx, models.AlertMaintenance, models.SeverityInfo, "service due", "rail-001")
	require.NoError(t, err)
	_, err = env.alerts.Resolve(ctx, a1.ID)
	require.NoError(t, err)

	w := env.do(t, "GET", "/api/realtime/alerts", "")
	require.Equal(t, http.StatusOK, w.Code)
	var open []models.Alert
	decode(t, w, &open)
	require.Len(t, open, 1)
	assert.Equal(t, models.AlertMaintenance, open[0].Type)
}

func TestAlerts_ResolveIdempotentOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	a, err := env.alerts.Create(context.Background(), models.AlertFuel, models.SeverityWarning, "low fuel", "truck-001")
	require.NoError(t, err)

	w := env.do(t, "PUT", "/api/realtime/alerts/"+a.ID+"/resolve", "")
	require.Equal(t, http.StatusOK, w.Code)
	var first models.Alert
	decode(t, w, &first)
	require.True(t, first.Resolved)
	require.NotNil(t, first.ResolvedAt)

	w = env.do(t, "PUT", "/api/realtime/alerts/"+a.ID+"/resolve", "")
	require.Equal(t, http.StatusOK, w.Code)
	var second models.Alert
	decode(t, w, &second)
	assert.True(t, second.Resolved)
	assert.Equal(t, first.ResolvedAt.UTC(), second.ResolvedAt.UTC())
}

func TestAlerts_ResolveUnknown(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "PUT", "/api/realtime/alerts/missing/resolve", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
