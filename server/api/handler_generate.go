package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/adrianliechti/vibevoice/pkg/generate"
	"github.com/adrianliechti/vibevoice/pkg/wav"
)

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := readGenerateRequest(r)

	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	result, err := h.service.Generate(r.Context(), req)

	if err != nil {
		writeGenerateError(w, err)
		return
	}

	slog.Info("generation complete",
		"id", result.ID,
		"utterances", result.Utterances,
		"duration", result.Duration,
		"elapsed", result.Elapsed,
	)

	writeJson(w, GenerationResponse{
		Status:  "success",
		Message: fmt.Sprintf("generated %.2fs of audio in %s", result.Duration, result.Elapsed.Round(time.Millisecond)),

		GenerationID: result.ID,

		AudioBase64: base64.StdEncoding.EncodeToString(wav.Encode(result.Audio, result.SampleRate)),
		Duration:    result.Duration,
		SampleRate:  result.SampleRate,
	})
}

// handleGenerateWAV runs the same pipeline but streams the container
// directly instead of wrapping it in a JSON envelope.
func (h *Handler) handleGenerateWAV(w http.ResponseWriter, r *http.Request) {
	req, err := readGenerateRequest(r)

	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	result, err := h.service.Generate(r.Context(), req)

	if err != nil {
		writeGenerateError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("X-Generation-ID", result.ID)
	w.Header().Set("X-Duration", strconv.FormatFloat(result.Duration, 'f', 2, 64))

	w.Write(wav.Encode(result.Audio, result.SampleRate))
}

func readGenerateRequest(r *http.Request) (generate.Request, error) {
	var req generate.Request

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.New("invalid request body")
	}

	req.ApplyDefaults()

	return req, nil
}
