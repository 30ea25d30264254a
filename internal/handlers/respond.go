// Package handlers holds the REST collaborators. They read and write
// through the same store contract as the realtime core and publish
// realtime events for the mutations observers care about.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/blackdiamond/coaltrack/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// respondStoreError maps store sentinels to HTTP statuses. notFoundMsg
// names the entity for the 404 body.
func respondStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, notFoundMsg, http.StatusNotFound)
		return
	}
	log.WithError(err).Error("Store operation failed")
	http.Error(w, "Store unavailable", http.StatusServiceUnavailable)
}
