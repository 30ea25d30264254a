package handlers

import (
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/realtime"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// VehicleHandler serves the vehicle collection.
type VehicleHandler struct {
	store   store.Store
	actions *realtime.Actions
	rand    func() float64
}

// NewVehicleHandler creates a vehicle handler.
func NewVehicleHandler(s store.Store, actions *realtime.Actions) *VehicleHandler {
	return &VehicleHandler{store: s, actions: actions, rand: rand.Float64}
}

// Register mounts the vehicle routes.
func (h *VehicleHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/vehicles", h.list)
	mux.HandleFunc("GET /api/vehicles/positions", h.positions)
	mux.HandleFunc("GET /api/vehicles/{id}", h.get)
	mux.HandleFunc("PUT /api/vehicles/{id}/location", h.updateLocation)
	mux.HandleFunc("PUT /api/vehicles/{id}/status", h.updateStatus)
	mux.HandleFunc("GET /api/vehicles/{id}/metrics", h.metrics)
}

func (h *VehicleHandler) list(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.store.ListVehicles(r.Context())
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) get(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.GetVehicle(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// vehiclePosition is the live-position projection of a vehicle.
type vehiclePosition struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Position   models.Coordinates `json:"position"`
	Status     string             `json:"status"`
	Speed      float64            `json:"speed"`
	Fuel       float64            `json:"fuel"`
	LastUpdate time.Time          `json:"last_update"`
}

func (h *VehicleHandler) positions(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.store.ListVehicles(r.Context())
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	positions := make([]vehiclePosition, 0, len(vehicles))
	for _, v := range vehicles {
		positions = append(positions, vehiclePosition{
			ID:         v.ID,
			Name:       v.Name,
			Type:       v.Type,
			Position:   v.CurrentLocation,
			Status:     v.Status,
			Speed:      v.Speed,
			Fuel:       v.Fuel,
			LastUpdate: v.LastUpdate,
		})
	}
	respondJSON(w, http.StatusOK, positions)
}

func (h *VehicleHandler) updateLocation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var req struct {
		Location *models.Coordinates `json:"location"`
		Speed    *float64            `json:"speed"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Location == nil {
		http.Error(w, "location is required", http.StatusBadRequest)
		return
	}
	v, err := h.actions.UpdateVehicleLocation(r.Context(), r.PathValue("id"), *req.Location, req.Speed)
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if !models.IsValidVehicleStatus(req.Status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}
	v, err := h.store.UpdateVehicle(r.Context(), r.PathValue("id"), func(v *models.Vehicle) {
		v.Status = req.Status
		v.LastUpdate = time.Now()
	})
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// metrics returns synthetic performance figures. Only the shape is
// contractual; real telemetry analytics are out of scope.
func (h *VehicleHandler) metrics(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.GetVehicle(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}
	maintenanceScore := 65.0
	switch v.Maintenance.Status {
	case "excellent":
		maintenanceScore = 95
	case "good":
		maintenanceScore = 85
	}
	respondJSON(w, http.StatusOK, map[string]float64{
		"efficiency":        h.rand()*20 + 80,
		"fuel_consumption":  h.rand()*5 + 15,
		"average_speed":     h.rand()*20 + 50,
		"uptime":            h.rand()*10 + 90,
		"maintenance_score": maintenanceScore,
	})
}
