package models

import (
	"time"
)

// Alert types.
const (
	AlertFuel        = "fuel"
	AlertMaintenance = "maintenance"
	AlertGeofence    = "geofence"
)

// Alert severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert represents an operational alert. An alert starts open and can
// be resolved at most once; the resolution timestamp is set exactly
// once and never changes afterwards.
type Alert struct {
	ID            string     `bson:"_id" json:"id"`
	SchemaVersion int        `bson:"schema_version" json:"-"`
	Type          string     `bson:"type" json:"type"`         // "fuel", "maintenance", "geofence"
	Severity      string     `bson:"severity" json:"severity"` // "info", "warning", "critical"
	Message       string     `bson:"message" json:"message"`
	VehicleID     string     `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	Timestamp     time.Time  `bson:"timestamp" json:"timestamp"`
	Resolved      bool       `bson:"resolved" json:"resolved"`
	ResolvedAt    *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}
