package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/blackdiamond/coaltrack/internal/models"
)

// Memory is an in-process Store. It backs tests and the MONGO_URI-less
// development mode; nothing survives a restart. Each entity kind has
// its own lock, so mutations of one kind never stall another, and
// mutators run entirely under the kind lock, which serializes
// read-modify-write per record.
type Memory struct {
	vmu       sync.RWMutex
	vehicles  map[string]models.Vehicle
	lmu       sync.RWMutex
	locations map[string]models.Location
	smu       sync.RWMutex
	shipments map[string]models.Shipment
	amu       sync.RWMutex
	alerts    map[string]models.Alert
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		vehicles:  make(map[string]models.Vehicle),
		locations: make(map[string]models.Location),
		shipments: make(map[string]models.Shipment),
		alerts:    make(map[string]models.Alert),
	}
}

func (m *Memory) Close(ctx context.Context) error { return nil }

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}

func (m *Memory) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	m.vmu.RLock()
	defer m.vmu.RUnlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, notFound("vehicles", id)
	}
	return &v, nil
}

func (m *Memory) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	m.vmu.RLock()
	defer m.vmu.RUnlock()
	out := make([]models.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) InsertVehicle(ctx context.Context, v models.Vehicle) error {
	m.vmu.Lock()
	defer m.vmu.Unlock()
	v.SchemaVersion = models.SchemaVersion
	m.vehicles[v.ID] = v
	return nil
}

func (m *Memory) UpdateVehicle(ctx context.Context, id string, mutate func(*models.Vehicle)) (*models.Vehicle, error) {
	m.vmu.Lock()
	defer m.vmu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, notFound("vehicles", id)
	}
	mutate(&v)
	clampVehicle(&v)
	m.vehicles[id] = v
	return &v, nil
}

func (m *Memory) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	m.lmu.RLock()
	defer m.lmu.RUnlock()
	l, ok := m.locations[id]
	if !ok {
		return nil, notFound("locations", id)
	}
	return &l, nil
}

func (m *Memory) ListLocations(ctx context.Context) ([]models.Location, error) {
	m.lmu.RLock()
	defer m.lmu.RUnlock()
	out := make([]models.Location, 0, len(m.locations))
	for _, l := range m.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) InsertLocation(ctx context.Context, l models.Location) error {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	l.SchemaVersion = models.SchemaVersion
	m.locations[l.ID] = l
	return nil
}

func (m *Memory) UpdateLocation(ctx context.Context, id string, mutate func(*models.Location)) (*models.Location, error) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	l, ok := m.locations[id]
	if !ok {
		return nil, notFound("locations", id)
	}
	mutate(&l)
	clampLocation(&l)
	m.locations[id] = l
	return &l, nil
}

func (m *Memory) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	m.smu.RLock()
	defer m.smu.RUnlock()
	s, ok := m.shipments[id]
	if !ok {
		return nil, notFound("shipments", id)
	}
	s.TrackingHistory = append([]models.TrackingEntry(nil), s.TrackingHistory...)
	return &s, nil
}

func (m *Memory) ListShipments(ctx context.Context) ([]models.Shipment, error) {
	m.smu.RLock()
	defer m.smu.RUnlock()
	out := make([]models.Shipment, 0, len(m.shipments))
	for _, s := range m.shipments {
		s.TrackingHistory = append([]models.TrackingEntry(nil), s.TrackingHistory...)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) InsertShipment(ctx context.Context, s models.Shipment) (*models.Shipment, error) {
	m.smu.Lock()
	defer m.smu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.SchemaVersion = models.SchemaVersion
	m.shipments[s.ID] = s
	return &s, nil
}

func (m *Memory) UpdateShipment(ctx context.Context, id string, mutate func(*models.Shipment)) (*models.Shipment, error) {
	m.smu.Lock()
	defer m.smu.Unlock()
	s, ok := m.shipments[id]
	if !ok {
		return nil, notFound("shipments", id)
	}
	s.TrackingHistory = append([]models.TrackingEntry(nil), s.TrackingHistory...)
	mutate(&s)
	m.shipments[id] = s
	return &s, nil
}

func (m *Memory) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	m.amu.RLock()
	defer m.amu.RUnlock()
	a, ok := m.alerts[id]
	if !ok {
		return nil, notFound("alerts", id)
	}
	return &a, nil
}

func (m *Memory) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	m.amu.RLock()
	defer m.amu.RUnlock()
	out := make([]models.Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *Memory) ListOpenAlerts(ctx context.Context) ([]models.Alert, error) {
	all, _ := m.ListAlerts(ctx)
	open := make([]models.Alert, 0, len(all))
	for _, a := range all {
		if !a.Resolved {
			open = append(open, a)
		}
	}
	return open, nil
}

func (m *Memory) InsertAlert(ctx context.Context, a models.Alert) (*models.Alert, error) {
	m.amu.Lock()
	defer m.amu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.SchemaVersion = models.SchemaVersion
	m.alerts[a.ID] = a
	return &a, nil
}

func (m *Memory) UpdateAlert(ctx context.Context, id string, mutate func(*models.Alert)) (*models.Alert, error) {
	m.amu.Lock()
	defer m.amu.Unlock()
	a, ok := m.alerts[id]
	if !ok {
		return nil, notFound("alerts", id)
	}
	mutate(&a)
	m.alerts[id] = a
	return &a, nil
}
