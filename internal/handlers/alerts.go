package handlers

import (
	"net/http"

	"github.com/blackdiamond/coaltrack/internal/alerts"
)

// AlertHandler serves the realtime alert routes.
type AlertHandler struct {
	alerts *alerts.Manager
}

// NewAlertHandler creates an alert handler.
func NewAlertHandler(am *alerts.Manager) *AlertHandler {
	return &AlertHandler{alerts: am}
}

// Register mounts the alert routes.
func (h *AlertHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/realtime/alerts", h.listOpen)
	mux.HandleFunc("PUT /api/realtime/alerts/{id}/resolve", h.resolve)
}

func (h *AlertHandler) listOpen(w http.ResponseWriter, r *http.Request) {
	open, err := h.alerts.ListOpen(r.Context())
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, open)
}

// resolve is idempotent: resolving an already-resolved alert returns
// it unchanged.
func (h *AlertHandler) resolve(w http.ResponseWriter, r *http.Request) {
	a, err := h.alerts.Resolve(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err, "Alert not found")
		return
	}
	respondJSON(w, http.StatusOK, a)
}
