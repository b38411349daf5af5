package vibevoice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/vibevoice/pkg/provider"
	"github.com/adrianliechti/vibevoice/pkg/wav"

	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	pcm := make([]byte, 4800)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		require.Equal(t, "Speaker 1: Hi\nSpeaker 2: Hello", req.Script)
		require.Equal(t, []string{"/voices/alice.wav", "/voices/bob.wav"}, req.VoiceSamples)
		require.InDelta(t, 1.3, req.CFGScale, 1e-9)

		w.Header().Set("Content-Type", "audio/wav")
		w.Write(wav.Encode(pcm, 24000))
	}))
	defer server.Close()

	client, err := New(server.URL)
	require.NoError(t, err)

	utterances := []provider.Utterance{
		{Speaker: 0, Text: "Hi"},
		{Speaker: 1, Text: "Hello"},
	}

	voices := []provider.Voice{
		{Name: "alice", Path: "/voices/alice.wav"},
		{Name: "bob", Path: "/voices/bob.wav"},
	}

	synthesis, err := client.Synthesize(context.Background(), utterances, voices, &provider.SynthesizeOptions{CFGScale: 1.3})
	require.NoError(t, err)

	require.Equal(t, pcm, synthesis.Content)
	require.Equal(t, 24000, synthesis.SampleRate)
	require.NotEmpty(t, synthesis.ID)
}

func TestSynthesizeRuntimeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no audio chunks were generated", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := New(server.URL)
	require.NoError(t, err)

	_, err = client.Synthesize(context.Background(), []provider.Utterance{{Text: "hi"}}, nil, nil)
	require.ErrorContains(t, err, "no audio chunks")
}

func TestProbe(t *testing.T) {
	var healthy bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)

		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL)
	require.NoError(t, err)

	require.Error(t, client.Probe(context.Background()))

	healthy = true

	require.NoError(t, client.Probe(context.Background()))
}

func TestNewRejectsInvalidURL(t *testing.T) {
	for _, url := range []string{"", "grpc://host", "/local/path"} {
		_, err := New(url)
		require.Error(t, err, "url %q", url)
	}
}
