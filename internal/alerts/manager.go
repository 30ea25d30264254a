// Package alerts implements the alert lifecycle: alerts are created
// open with a generated identifier and a server-assigned timestamp, and
// move to resolved at most once.
package alerts

import (
	"context"
	"time"

	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// Manager drives the open/resolved state machine on top of the store.
type Manager struct {
	store store.Store
	now   func() time.Time
}

// NewManager creates a manager. now defaults to time.Now and exists so
// tests can pin timestamps.
func NewManager(s store.Store) *Manager {
	return &Manager{store: s, now: time.Now}
}

// Create inserts a new open alert. Any client-supplied identifier or
// timestamp is discarded; the server assigns both.
func (m *Manager) Create(ctx context.Context, alertType, severity, message, vehicleID string) (*models.Alert, error) {
	return m.store.InsertAlert(ctx, models.Alert{
		Type:      alertType,
		Severity:  severity,
		Message:   message,
		VehicleID: vehicleID,
		Timestamp: m.now(),
		Resolved:  false,
	})
}

// Resolve marks the alert resolved and stamps the resolution time.
// Resolving an already-resolved alert is a no-op success: the flag and
// the original timestamp are left as they are. Unknown identifiers
// surface store.ErrNotFound.
func (m *Manager) Resolve(ctx context.Context, id string) (*models.Alert, error) {
	return m.store.UpdateAlert(ctx, id, func(a *models.Alert) {
		if a.Resolved {
			return
		}
		a.Resolved = true
		t := m.now()
		a.ResolvedAt = &t
	})
}

// ListOpen returns the alerts still open, for display. Audit listings
// that need resolved alerts too go through the store directly.
func (m *Manager) ListOpen(ctx context.Context) ([]models.Alert, error) {
	return m.store.ListOpenAlerts(ctx)
}

// HasOpenFuelAlert reports whether the vehicle already has an
// unresolved fuel alert. The edge-triggered low-fuel policy uses this
// to suppress repeats while one is outstanding.
func (m *Manager) HasOpenFuelAlert(ctx context.Context, vehicleID string) (bool, error) {
	open, err := m.store.ListOpenAlerts(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range open {
		if a.Type == models.AlertFuel && a.VehicleID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}
