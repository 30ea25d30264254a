package models

import (
	"time"
)

// SchemaVersion is stamped on every persisted record so future layout
// changes can be migrated. The original data files carried no version.
const SchemaVersion = 1

// Vehicle statuses.
const (
	VehicleActive      = "active"
	VehicleLoading     = "loading"
	VehicleMaintenance = "maintenance"
	VehicleInactive    = "inactive"
)

// Maintenance describes a vehicle's service outlook.
type Maintenance struct {
	NextDue string `bson:"next_due" json:"next_due"`
	Status  string `bson:"status" json:"status"` // "excellent", "good", "needs_attention"
}

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID              string      `bson:"_id" json:"id"`
	SchemaVersion   int         `bson:"schema_version" json:"-"`
	Name            string      `bson:"name" json:"name"`
	Type            string      `bson:"type" json:"type"` // "truck" or "rail"
	Capacity        float64     `bson:"capacity" json:"capacity"`
	CurrentLocation Coordinates `bson:"current_location" json:"current_location"`
	Status          string      `bson:"status" json:"status"` // "active", "loading", "maintenance", "inactive"
	Driver          string      `bson:"driver" json:"driver"`
	Fuel            float64     `bson:"fuel" json:"fuel"`   // percent, clamped to [0,100]
	Speed           float64     `bson:"speed" json:"speed"` // km/h, never negative
	Route           string      `bson:"route" json:"route"`
	LastUpdate      time.Time   `bson:"last_update" json:"last_update"`
	Maintenance     Maintenance `bson:"maintenance" json:"maintenance"`
}

// IsValidVehicleStatus reports whether s is one of the known vehicle statuses.
func IsValidVehicleStatus(s string) bool {
	switch s {
	case VehicleActive, VehicleLoading, VehicleMaintenance, VehicleInactive:
		return true
	}
	return false
}
