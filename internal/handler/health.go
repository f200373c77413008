package handler

import (
	"net/http"

	"github.com/capitalize-ai/mail-assistant/internal/credential"
)

// ConnectionChecker reports broker connectivity.
type ConnectionChecker interface {
	IsConnected() bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	broker         ConnectionChecker
	creds          credential.Source
	allowHeaderKey bool
}

// NewHealthHandler creates a new health handler. broker is nil when events are disabled.
func NewHealthHandler(broker ConnectionChecker, creds credential.Source, allowHeaderKey bool) *HealthHandler {
	return &HealthHandler{
		broker:         broker,
		creds:          creds,
		allowHeaderKey: allowHeaderKey,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.broker != nil && !h.broker.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "NATS not connected",
		})
		return
	}

	// Without a server key, requests must bring their own.
	if _, err := h.creds.APIKey(r.Context()); err != nil && !h.allowHeaderKey {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "completion API key not configured",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
