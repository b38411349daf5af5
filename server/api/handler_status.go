package api

import (
	"net/http"
	"time"
)

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := "online"
	message := "server is running"

	if !h.service.Ready() {
		status = "initializing"
		message = "server is initializing"
	}

	writeJson(w, StatusResponse{
		Status:  status,
		Message: message,

		AvailableVoices: h.service.Voices(),
		ModelLoaded:     h.service.Ready(),
	})
}

// HandleHealth is the liveness probe, exempt from authentication.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleVoices(w http.ResponseWriter, r *http.Request) {
	voices := h.service.Voices()

	writeJson(w, VoicesResponse{
		Voices: voices,
		Count:  len(voices),
	})
}
