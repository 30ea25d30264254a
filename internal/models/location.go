package models

import (
	"time"
)

// Location types.
const (
	LocationMine  = "mine"
	LocationPlant = "plant"
	LocationHub   = "hub"
)

// Contact holds the reachability details for a facility.
type Contact struct {
	Manager string `bson:"manager" json:"manager"`
	Phone   string `bson:"phone" json:"phone"`
}

// Location represents a fixed facility: a mine, a power plant or a
// distribution hub. Stock is kept within [0, Capacity] by the store.
type Location struct {
	ID               string      `bson:"_id" json:"id"`
	SchemaVersion    int         `bson:"schema_version" json:"-"`
	Name             string      `bson:"name" json:"name"`
	Type             string      `bson:"type" json:"type"` // "mine", "plant", "hub"
	Coordinates      Coordinates `bson:"coordinates" json:"coordinates"`
	Capacity         float64     `bson:"capacity" json:"capacity"`
	CurrentStock     float64     `bson:"current_stock" json:"current_stock"`
	DailyProduction  float64     `bson:"daily_production,omitempty" json:"daily_production,omitempty"`
	DailyConsumption float64     `bson:"daily_consumption,omitempty" json:"daily_consumption,omitempty"`
	Throughput       float64     `bson:"throughput,omitempty" json:"throughput,omitempty"`
	OperationalHours string      `bson:"operational_hours" json:"operational_hours"`
	Contact          Contact     `bson:"contact" json:"contact"`
	Facilities       []string    `bson:"facilities" json:"facilities"`
	LastUpdate       time.Time   `bson:"last_update,omitempty" json:"last_update,omitempty"`
}

// Utilization is the derived stock-versus-capacity view of a location.
type Utilization struct {
	Current    float64 `json:"current"`
	Capacity   float64 `json:"capacity"`
	Percentage float64 `json:"percentage"`
	Available  float64 `json:"available"`
	Status     string  `json:"status"` // "normal", "warning", "critical"
}

// Utilization computes the capacity utilization view. Status trips to
// "warning" above 70% and "critical" above 90%.
func (l *Location) Utilization() Utilization {
	ratio := 0.0
	if l.Capacity > 0 {
		ratio = l.CurrentStock / l.Capacity
	}
	status := "normal"
	switch {
	case ratio > 0.9:
		status = "critical"
	case ratio > 0.7:
		status = "warning"
	}
	return Utilization{
		Current:    l.CurrentStock,
		Capacity:   l.Capacity,
		Percentage: ratio * 100,
		Available:  l.Capacity - l.CurrentStock,
		Status:     status,
	}
}
