package api

// Response bodies mirror the published API contract; field names are part
// of the stable surface.

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	AvailableVoices []string `json:"available_voices"`
	ModelLoaded     bool     `json:"model_loaded"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type VoicesResponse struct {
	Voices []string `json:"voices"`
	Count  int      `json:"count"`
}

type GenerationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	GenerationID string `json:"generation_id"`

	AudioBase64 string  `json:"audio_base64"`
	Duration    float64 `json:"duration"`
	SampleRate  int     `json:"sample_rate"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
