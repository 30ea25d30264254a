package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// LocationHandler serves the facility collection.
type LocationHandler struct {
	store store.Store
}

// NewLocationHandler creates a location handler.
func NewLocationHandler(s store.Store) *LocationHandler {
	return &LocationHandler{store: s}
}

// Register mounts the location routes.
func (h *LocationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/locations", h.list)
	mux.HandleFunc("GET /api/locations/{id}", h.get)
	mux.HandleFunc("PUT /api/locations/{id}/stock", h.updateStock)
	mux.HandleFunc("GET /api/locations/{id}/utilization", h.utilization)
}

func (h *LocationHandler) list(w http.ResponseWriter, r *http.Request) {
	locations, err := h.store.ListLocations(r.Context())
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) get(w http.ResponseWriter, r *http.Request) {
	l, err := h.store.GetLocation(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err, "Location not found")
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// updateStock writes the stock level; the store clamps it to
// [0, capacity].
func (h *LocationHandler) updateStock(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var req struct {
		Stock *float64 `json:"stock"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Stock == nil {
		http.Error(w, "stock is required", http.StatusBadRequest)
		return
	}
	l, err := h.store.UpdateLocation(r.Context(), r.PathValue("id"), func(l *models.Location) {
		l.CurrentStock = *req.Stock
		l.LastUpdate = time.Now()
	})
	if err != nil {
		respondStoreError(w, err, "Location not found")
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (h *LocationHandler) utilization(w http.ResponseWriter, r *http.Request) {
	l, err := h.store.GetLocation(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err, "Location not found")
		return
	}
	respondJSON(w, http.StatusOK, l.Utilization())
}
