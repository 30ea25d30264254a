package models

import (
	"time"
)

// Shipment statuses.
const (
	ShipmentPending   = "pending"
	ShipmentInTransit = "in-transit"
	ShipmentCompleted = "completed"
	ShipmentCancelled = "cancelled"
)

// TrackingEntry is one step in a shipment's audit trail.
type TrackingEntry struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Status    string    `bson:"status" json:"status"`
	Location  string    `bson:"location" json:"location"`
}

// Shipment represents a coal shipment between two facilities. The
// tracking history is append-only; every status transition adds exactly
// one entry and entries are never removed or reordered.
type Shipment struct {
	ID               string          `bson:"_id" json:"id"`
	SchemaVersion    int             `bson:"schema_version" json:"-"`
	Origin           string          `bson:"origin" json:"origin"`
	Destination      string          `bson:"destination" json:"destination"`
	Quantity         float64         `bson:"quantity" json:"quantity"`
	Priority         string          `bson:"priority" json:"priority"` // "low", "medium", "high"
	Status           string          `bson:"status" json:"status"`     // "pending", "in-transit", "completed", "cancelled"
	VehicleID        string          `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	ScheduledDate    string          `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	EstimatedArrival time.Time       `bson:"estimated_arrival,omitempty" json:"estimated_arrival,omitempty"`
	CreatedAt        time.Time       `bson:"created_at" json:"created_at"`
	TrackingHistory  []TrackingEntry `bson:"tracking_history" json:"tracking_history"`
}
