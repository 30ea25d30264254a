package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/realtime"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// ShipmentHandler serves the shipment collection.
type ShipmentHandler struct {
	store   store.Store
	actions *realtime.Actions
}

// NewShipmentHandler creates a shipment handler.
func NewShipmentHandler(s store.Store, actions *realtime.Actions) *ShipmentHandler {
	return &ShipmentHandler{store: s, actions: actions}
}

// Register mounts the shipment routes.
func (h *ShipmentHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/shipments", h.list)
	mux.HandleFunc("POST /api/shipments", h.create)
	mux.HandleFunc("GET /api/shipments/{id}", h.get)
	mux.HandleFunc("PUT /api/shipments/{id}/status", h.updateStatus)
	mux.HandleFunc("GET /api/shipments/{id}/tracking", h.tracking)
}

func (h *ShipmentHandler) list(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.store.ListShipments(r.Context())
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, shipments)
}

// create inserts a new shipment: status pending, generated identifier,
// and a one-entry tracking history seeded at the origin.
func (h *ShipmentHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var req struct {
		Origin        string  `json:"origin"`
		Destination   string  `json:"destination"`
		Quantity      float64 `json:"quantity"`
		Priority      string  `json:"priority"`
		VehicleID     string  `json:"vehicle_id"`
		ScheduledDate string  `json:"scheduled_date"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Origin == "" || req.Destination == "" {
		http.Error(w, "origin and destination are required", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	now := time.Now()
	shipment, err := h.store.InsertShipment(r.Context(), models.Shipment{
		Origin:        req.Origin,
		Destination:   req.Destination,
		Quantity:      req.Quantity,
		Priority:      req.Priority,
		Status:        models.ShipmentPending,
		VehicleID:     req.VehicleID,
		ScheduledDate: req.ScheduledDate,
		CreatedAt:     now,
		TrackingHistory: []models.TrackingEntry{
			{Timestamp: now, Status: "created", Location: req.Origin},
		},
	})
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondJSON(w, http.StatusCreated, shipment)
}

func (h *ShipmentHandler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.GetShipment(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err, "Shipment not found")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (h *ShipmentHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var req struct {
		Status   string `json:"status"`
		Location string `json:"location"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}
	s, err := h.actions.UpdateShipmentStatus(r.Context(), r.PathValue("id"), req.Status, req.Location)
	if err != nil {
		respondStoreError(w, err, "Shipment not found")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (h *ShipmentHandler) tracking(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.GetShipment(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err, "Shipment not found")
		return
	}
	history := s.TrackingHistory
	if history == nil {
		history = []models.TrackingEntry{}
	}
	respondJSON(w, http.StatusOK, history)
}
