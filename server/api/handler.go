package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/vibevoice/pkg/admission"
	"github.com/adrianliechti/vibevoice/pkg/generate"
	"github.com/adrianliechti/vibevoice/pkg/script"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *generate.Service
}

func New(service *generate.Service) (*Handler, error) {
	h := &Handler{
		service: service,
	}

	return h, nil
}

// Attach registers the protected routes. The health route is attached
// separately, outside the authenticated group.
func (h *Handler) Attach(r chi.Router) {
	r.Get("/", h.handleStatus)
	r.Get("/voices", h.handleVoices)

	r.Post("/generate", h.handleGenerate)
	r.Post("/generate/wav", h.handleGenerateWAV)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	json.NewEncoder(w).Encode(ErrorResponse{Detail: text})
}

// writeGenerateError maps pipeline errors onto the response contract. Model
// failures are logged with their full cause and surfaced generically.
func writeGenerateError(w http.ResponseWriter, err error) {
	var modelErr *generate.ModelError

	if errors.As(err, &modelErr) {
		slog.Error("generation failed", "error", modelErr.Err)

		writeError(w, http.StatusInternalServerError, errors.New("generation failed"))

		return
	}

	if errors.Is(err, admission.ErrBusy) {
		w.Header().Set("Retry-After", "30")

		writeError(w, http.StatusServiceUnavailable, err)

		return
	}

	if errors.Is(err, generate.ErrModelNotLoaded) {
		writeError(w, http.StatusServiceUnavailable, errors.New("server is still initializing"))

		return
	}

	var unknownVoice *generate.UnknownVoiceError
	var unattributed *script.UnattributedLineError

	switch {
	case errors.Is(err, script.ErrEmptyScript),
		errors.Is(err, generate.ErrInvalidSpeakerCount),
		errors.Is(err, generate.ErrInvalidGuidanceScale),
		errors.Is(err, generate.ErrInsufficientVoices),
		errors.As(err, &unknownVoice),
		errors.As(err, &unattributed):
		writeError(w, http.StatusBadRequest, err)

	default:
		slog.Error("generation failed", "error", err)

		writeError(w, http.StatusInternalServerError, errors.New("generation failed"))
	}
}
