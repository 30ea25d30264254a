package realtime

import (
	"context"
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// Dispatcher routes inbound observer messages. All requests are
// fire-and-forget: a valid request produces a broadcast, an invalid one
// produces an error event to the sender only.
type Dispatcher struct {
	hub     *Hub
	actions *Actions
}

// NewDispatcher creates a dispatcher over the hub and shared actions.
func NewDispatcher(hub *Hub, actions *Actions) *Dispatcher {
	return &Dispatcher{hub: hub, actions: actions}
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type vehicleLocationRequest struct {
	VehicleID string              `json:"vehicle_id"`
	Location  *models.Coordinates `json:"location"`
	Speed     *float64            `json:"speed"`
}

type shipmentStatusRequest struct {
	ShipmentID string `json:"shipment_id"`
	Status     string `json:"status"`
	Location   string `json:"location"`
}

type createAlertRequest struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	VehicleID string `json:"vehicle_id"`
}

// Dispatch handles one raw inbound frame from an observer.
func (d *Dispatcher) Dispatch(ctx context.Context, sender Subscriber, raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		d.sendError(sender, "malformed message")
		return
	}

	switch msg.Type {
	case MsgJoinTracking:
		d.hub.Join(sender, ChannelTracking)
	case MsgUpdateVehicleLocation:
		d.updateVehicleLocation(ctx, sender, msg.Data)
	case MsgUpdateShipmentStatus:
		d.updateShipmentStatus(ctx, sender, msg.Data)
	case MsgCreateAlert:
		d.createAlert(ctx, sender, msg.Data)
	default:
		d.sendError(sender, "unknown message type: "+msg.Type)
	}
}

func (d *Dispatcher) updateVehicleLocation(ctx context.Context, sender Subscriber, data json.RawMessage) {
	var req vehicleLocationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		d.sendError(sender, "malformed update-vehicle-location request")
		return
	}
	if req.VehicleID == "" || req.Location == nil {
		d.sendError(sender, "update-vehicle-location requires vehicle_id and location")
		return
	}
	if _, err := d.actions.UpdateVehicleLocation(ctx, req.VehicleID, *req.Location, req.Speed); err != nil {
		d.reportStoreError(sender, "update-vehicle-location", err)
	}
}

func (d *Dispatcher) updateShipmentStatus(ctx context.Context, sender Subscriber, data json.RawMessage) {
	var req shipmentStatusRequest
	if err := json.Unmarshal(data, &req); err != nil {
		d.sendError(sender, "malformed update-shipment-status request")
		return
	}
	if req.ShipmentID == "" || req.Status == "" {
		d.sendError(sender, "update-shipment-status requires shipment_id and status")
		return
	}
	if _, err := d.actions.UpdateShipmentStatus(ctx, req.ShipmentID, req.Status, req.Location); err != nil {
		d.reportStoreError(sender, "update-shipment-status", err)
	}
}

func (d *Dispatcher) createAlert(ctx context.Context, sender Subscriber, data json.RawMessage) {
	var req createAlertRequest
	if err := json.Unmarshal(data, &req); err != nil {
		d.sendError(sender, "malformed create-alert request")
		return
	}
	if req.Type == "" || req.Severity == "" || req.Message == "" {
		d.sendError(sender, "create-alert requires type, severity and message")
		return
	}
	if _, err := d.actions.CreateAlert(ctx, req.Type, req.Severity, req.Message, req.VehicleID); err != nil {
		d.reportStoreError(sender, "create-alert", err)
	}
}

func (d *Dispatcher) reportStoreError(sender Subscriber, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		d.sendError(sender, op+": not found")
		return
	}
	log.WithError(err).WithField("op", op).Error("Observer request failed")
	d.sendError(sender, op+": temporarily unavailable")
}

func (d *Dispatcher) sendError(sender Subscriber, message string) {
	sender.Send(Event{Type: EventError, Data: ErrorData{Message: message}})
}
