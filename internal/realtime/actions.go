package realtime

import (
	"context"
	"time"

	"github.com/blackdiamond/coaltrack/internal/alerts"
	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// Actions bundles the mutation-then-broadcast operations shared by the
// WebSocket dispatcher, the REST handlers, the MQTT bridge and the
// telemetry simulator. Each operation is one store mutation followed by
// one publish; the mutation is atomic per the store contract, and
// nothing is broadcast when the write fails.
type Actions struct {
	store  store.Store
	alerts *alerts.Manager
	hub    *Hub
	now    func() time.Time
}

// NewActions wires the shared mutation operations.
func NewActions(s store.Store, am *alerts.Manager, hub *Hub) *Actions {
	return &Actions{store: s, alerts: am, hub: hub, now: time.Now}
}

// UpdateVehicleLocation writes the vehicle's position (and speed, when
// supplied), stamps LastUpdate, and broadcasts the delta.
func (a *Actions) UpdateVehicleLocation(ctx context.Context, vehicleID string, loc models.Coordinates, speed *float64) (*models.Vehicle, error) {
	v, err := a.store.UpdateVehicle(ctx, vehicleID, func(v *models.Vehicle) {
		v.CurrentLocation = loc
		if speed != nil {
			v.Speed = *speed
		}
		v.LastUpdate = a.now()
	})
	if err != nil {
		return nil, err
	}
	a.hub.Publish(ChannelTracking, Event{
		Type: EventVehicleLocationUpdated,
		Data: VehicleLocationUpdate{
			VehicleID: v.ID,
			Location:  v.CurrentLocation,
			Speed:     v.Speed,
			Timestamp: v.LastUpdate,
		},
	})
	return v, nil
}

// UpdateShipmentStatus writes the new status, appends exactly one
// tracking-history entry, and broadcasts the transition.
func (a *Actions) UpdateShipmentStatus(ctx context.Context, shipmentID, status, location string) (*models.Shipment, error) {
	if location == "" {
		location = "Unknown"
	}
	now := a.now()
	s, err := a.store.UpdateShipment(ctx, shipmentID, func(s *models.Shipment) {
		s.Status = status
		s.TrackingHistory = append(s.TrackingHistory, models.TrackingEntry{
			Timestamp: now,
			Status:    status,
			Location:  location,
		})
	})
	if err != nil {
		return nil, err
	}
	a.hub.Publish(ChannelTracking, Event{
		Type: EventShipmentStatusUpdated,
		Data: ShipmentStatusUpdate{
			ShipmentID: s.ID,
			Status:     s.Status,
			Location:   location,
			Timestamp:  now,
		},
	})
	return s, nil
}

// CreateAlert inserts a new open alert and broadcasts it.
func (a *Actions) CreateAlert(ctx context.Context, alertType, severity, message, vehicleID string) (*models.Alert, error) {
	al, err := a.alerts.Create(ctx, alertType, severity, message, vehicleID)
	if err != nil {
		return nil, err
	}
	a.hub.Publish(ChannelTracking, Event{Type: EventNewAlert, Data: al})
	return al, nil
}

// PublishFleet broadcasts the full vehicle set. The telemetry
// simulator calls this once per tick.
func (a *Actions) PublishFleet(vehicles []models.Vehicle) {
	a.hub.Publish(ChannelTracking, Event{Type: EventFleetUpdated, Data: vehicles})
}
