// Package realtime implements the subscription registry, the broadcast
// hub and the WebSocket channel protocol. Observers connect, join the
// tracking channel and from then on receive state-change events; they
// may push mutation requests at any time without acknowledgment.
package realtime

import (
	"time"

	"github.com/blackdiamond/coaltrack/internal/models"
)

// ChannelTracking is the broadcast channel carrying fleet state
// changes. The hub itself supports any number of named channels.
const ChannelTracking = "tracking"

// Outbound event types.
const (
	EventFleetUpdated           = "fleet-updated"
	EventVehicleLocationUpdated = "vehicle-location-updated"
	EventShipmentStatusUpdated  = "shipment-status-updated"
	EventNewAlert               = "new-alert"
	EventError                  = "error"
)

// Inbound message types.
const (
	MsgJoinTracking          = "join-tracking"
	MsgUpdateVehicleLocation = "update-vehicle-location"
	MsgUpdateShipmentStatus  = "update-shipment-status"
	MsgCreateAlert           = "create-alert"
)

// Event is the wire envelope for everything sent to an observer.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// VehicleLocationUpdate is the delta broadcast after a vehicle location
// write. It deliberately carries only the changed fields, not the full
// vehicle record.
type VehicleLocationUpdate struct {
	VehicleID string             `json:"vehicle_id"`
	Location  models.Coordinates `json:"location"`
	Speed     float64            `json:"speed"`
	Timestamp time.Time          `json:"timestamp"`
}

// ShipmentStatusUpdate is broadcast after a shipment status transition.
type ShipmentStatusUpdate struct {
	ShipmentID string    `json:"shipment_id"`
	Status     string    `json:"status"`
	Location   string    `json:"location"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorData is sent to a single observer when its request was
// malformed or referenced an unknown entity. Errors are never
// broadcast.
type ErrorData struct {
	Message string `json:"message"`
}
