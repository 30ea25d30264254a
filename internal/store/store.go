package store

import (
	"context"
	"errors"

	"github.com/blackdiamond/coaltrack/internal/models"
)

var (
	// ErrNotFound is returned when no record exists for an identifier.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable is returned when the durable medium fails. The
	// mutation was not applied; callers retry or report upward.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the shared entity store. Every Update call is a per-record
// read-modify-write: the mutator sees the current record and its result
// replaces it, serialized against other mutations of the same record.
// Mutations of unrelated records proceed independently.
type Store interface {
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	InsertVehicle(ctx context.Context, v models.Vehicle) error
	UpdateVehicle(ctx context.Context, id string, mutate func(*models.Vehicle)) (*models.Vehicle, error)

	GetLocation(ctx context.Context, id string) (*models.Location, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	InsertLocation(ctx context.Context, l models.Location) error
	UpdateLocation(ctx context.Context, id string, mutate func(*models.Location)) (*models.Location, error)

	GetShipment(ctx context.Context, id string) (*models.Shipment, error)
	ListShipments(ctx context.Context) ([]models.Shipment, error)
	// InsertShipment assigns a fresh unique identifier when the record
	// carries none and returns the stored shipment.
	InsertShipment(ctx context.Context, s models.Shipment) (*models.Shipment, error)
	UpdateShipment(ctx context.Context, id string, mutate func(*models.Shipment)) (*models.Shipment, error)

	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	ListAlerts(ctx context.Context) ([]models.Alert, error)
	ListOpenAlerts(ctx context.Context) ([]models.Alert, error)
	InsertAlert(ctx context.Context, a models.Alert) (*models.Alert, error)
	UpdateAlert(ctx context.Context, id string, mutate func(*models.Alert)) (*models.Alert, error)

	Close(ctx context.Context) error
}

// clampVehicle enforces the vehicle invariants after every mutation:
// fuel stays in [0,100] and speed never drops below zero. The original
// system let collaborator updates push both out of range.
func clampVehicle(v *models.Vehicle) {
	if v.Fuel < 0 {
		v.Fuel = 0
	}
	if v.Fuel > 100 {
		v.Fuel = 100
	}
	if v.Speed < 0 {
		v.Speed = 0
	}
}

// clampLocation keeps stock within [0, capacity].
func clampLocation(l *models.Location) {
	if l.CurrentStock < 0 {
		l.CurrentStock = 0
	}
	if l.Capacity > 0 && l.CurrentStock > l.Capacity {
		l.CurrentStock = l.Capacity
	}
}
