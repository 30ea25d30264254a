// Package seed loads the sample fleet used for development and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// SampleVehicles returns the demo fleet.
func SampleVehicles(now time.Time) []models.Vehicle {
	return []models.Vehicle{
		{
			ID:              "truck-001",
			Name:            "Coal Hauler Alpha",
			Type:            "truck",
			Capacity:        35000,
			CurrentLocation: models.Coordinates{Lat: 40.7128, Lng: -74.0060},
			Status:          models.VehicleActive,
			Driver:          "John Smith",
			Fuel:            85,
			Speed:           65,
			Route:           "Route-A1",
			LastUpdate:      now,
			Maintenance:     models.Maintenance{NextDue: "2024-02-15", Status: "good"},
		},
		{
			ID:              "rail-001",
			Name:            "Coal Express 1",
			Type:            "rail",
			Capacity:        120000,
			CurrentLocation: models.Coordinates{Lat: 41.8781, Lng: -87.6298},
			Status:          models.VehicleActive,
			Driver:          "Mike Johnson",
			Fuel:            92,
			Speed:           45,
			Route:           "Rail-R1",
			LastUpdate:      now,
			Maintenance:     models.Maintenance{NextDue: "2024-03-01", Status: "excellent"},
		},
		{
			ID:              "truck-002",
			Name:            "Heavy Duty Beta",
			Type:            "truck",
			Capacity:        40000,
			CurrentLocation: models.Coordinates{Lat: 39.7392, Lng: -104.9903},
			Status:          models.VehicleLoading,
			Driver:          "Sarah Wilson",
			Fuel:            78,
			Speed:           0,
			Route:           "Route-B2",
			LastUpdate:      now,
			Maintenance:     models.Maintenance{NextDue: "2024-01-30", Status: "needs_attention"},
		},
	}
}

// SampleLocations returns the demo facilities.
func SampleLocations() []models.Location {
	return []models.Location{
		{
			ID:               "mine-001",
			Name:             "Black Diamond Mine",
			Type:             models.LocationMine,
			Coordinates:      models.Coordinates{Lat: 39.7392, Lng: -104.9903},
			Capacity:         500000,
			CurrentStock:     350000,
			DailyProduction:  2500,
			OperationalHours: "24/7",
			Contact:          models.Contact{Manager: "Robert Brown", Phone: "+1-555-0101"},
			Facilities:       []string{"loading_dock", "weighing_station", "quality_control"},
		},
		{
			ID:               "plant-001",
			Name:             "Metro Power Plant",
			Type:             models.LocationPlant,
			Coordinates:      models.Coordinates{Lat: 41.8781, Lng: -87.6298},
			Capacity:         200000,
			CurrentStock:     45000,
			DailyConsumption: 1800,
			OperationalHours: "24/7",
			Contact:          models.Contact{Manager: "Lisa Davis", Phone: "+1-555-0102"},
			Facilities:       []string{"unloading_dock", "storage_silos", "conveyor_system"},
		},
		{
			ID:               "hub-001",
			Name:             "Central Distribution Hub",
			Type:             models.LocationHub,
			Coordinates:      models.Coordinates{Lat: 40.7128, Lng: -74.0060},
			Capacity:         150000,
			CurrentStock:     75000,
			Throughput:       3000,
			OperationalHours: "6:00-22:00",
			Contact:          models.Contact{Manager: "Tom Anderson", Phone: "+1-555-0103"},
			Facilities:       []string{"rail_terminal", "truck_loading", "storage_yard"},
		},
	}
}

// SampleShipment returns the demo in-transit shipment with its
// three-entry history.
func SampleShipment(now time.Time) models.Shipment {
	return models.Shipment{
		ID:            "ship-001",
		Origin:        "Black Diamond Mine",
		Destination:   "Metro Power Plant",
		Quantity:      25000,
		Priority:      "high",
		Status:        models.ShipmentInTransit,
		VehicleID:     "truck-001",
		ScheduledDate: "2024-01-20",
		CreatedAt:     now,
		TrackingHistory: []models.TrackingEntry{
			{Timestamp: now, Status: "created", Location: "Black Diamond Mine"},
			{Timestamp: now, Status: "loaded", Location: "Black Diamond Mine"},
			{Timestamp: now, Status: "departed", Location: "Black Diamond Mine"},
		},
	}
}

// EnsureSampleData seeds the store when the vehicle collection is
// empty. It is safe to call on every startup.
func EnsureSampleData(ctx context.Context, s store.Store) error {
	vehicles, err := s.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if len(vehicles) > 0 {
		return nil
	}

	now := time.Now()
	for _, v := range SampleVehicles(now) {
		if err := s.InsertVehicle(ctx, v); err != nil {
			return fmt.Errorf("seed vehicle %s: %w", v.ID, err)
		}
	}
	for _, l := range SampleLocations() {
		if err := s.InsertLocation(ctx, l); err != nil {
			return fmt.Errorf("seed location %s: %w", l.ID, err)
		}
	}
	if _, err := s.InsertShipment(ctx, SampleShipment(now)); err != nil {
		return fmt.Errorf("seed shipment: %w", err)
	}
	return nil
}
