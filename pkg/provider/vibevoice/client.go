// Package vibevoice talks to a locally hosted VibeVoice inference runtime
// over HTTP. The runtime loads the model once at startup and renders one
// script per call; its cold start is visible only through the health probe.
package vibevoice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/vibevoice/pkg/provider"
	"github.com/adrianliechti/vibevoice/pkg/script"
	"github.com/adrianliechti/vibevoice/pkg/wav"

	"github.com/google/uuid"
)

var (
	_ provider.Synthesizer = (*Client)(nil)
	_ provider.Prober      = (*Client)(nil)
)

type Client struct {
	*Config

	url string
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" || !strings.HasPrefix(url, "http") {
		return nil, errors.New("invalid url")
	}

	cfg := &Config{}

	for _, option := range options {
		option(cfg)
	}

	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}

	return &Client{
		Config: cfg,

		url: strings.TrimRight(url, "/"),
	}, nil
}

type generateRequest struct {
	Script string `json:"script"`

	VoiceSamples []string `json:"voice_samples"`

	CFGScale float64 `json:"cfg_scale,omitempty"`
}

func (c *Client) Synthesize(ctx context.Context, utterances []provider.Utterance, voices []provider.Voice, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	samples := make([]string, 0, len(voices))

	for _, v := range voices {
		samples = append(samples, v.Path)
	}

	body, err := json.Marshal(generateRequest{
		Script: script.Render(utterances),

		VoiceSamples: samples,

		CFGScale: options.CFGScale,
	})

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/generate", bytes.NewReader(body))

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	pcm, sampleRate, err := wav.Decode(data)

	if err != nil {
		return nil, fmt.Errorf("decode runtime response: %w", err)
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: c.url,

		Content:    pcm,
		SampleRate: sampleRate,
	}, nil
}

// Probe reports whether the runtime has finished loading the model.
func (c *Client) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/health", nil)

	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("runtime unhealthy: %s", resp.Status)
	}

	return nil
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	text := strings.TrimSpace(string(data))

	if text == "" {
		text = resp.Status
	}

	return errors.New(text)
}
