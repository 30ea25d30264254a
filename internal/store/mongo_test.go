package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackdiamond/coaltrack/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m, err := ConnectMongo(ctx, "mongodb://bad-host:1", "coaltrack_test")
	if err == nil {
		m.Close(context.Background())
		t.Error("expected error for unreachable URI, got nil")
	}
}

// Integration test (requires running MongoDB).
func TestMongo_VehicleRoundTrip_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m, err := ConnectMongo(ctx, uri, "coaltrack_test")
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	defer m.Close(context.Background())

	id := "truck-it-" + time.Now().Format("150405.000000000")
	require.NoError(t, m.InsertVehicle(ctx, models.Vehicle{
		ID:     id,
		Name:   "Integration Hauler",
		Status: models.VehicleActive,
		Fuel:   50,
	}))

	v, err := m.GetVehicle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Integration Hauler", v.Name)

	v, err = m.UpdateVehicle(ctx, id, func(v *models.Vehicle) {
		v.Fuel = -1
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v.Fuel)

	_, err = m.GetVehicle(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}
