package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GENERATE_QUEUE_DEPTH", "2")
	t.Setenv("GENERATE_TIMEOUT", "90s")
	t.Setenv("SAVE_GENERATED_AUDIO", "true")

	c, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, ":9000", c.Address)
	require.Equal(t, "secret", c.Token)
	require.Equal(t, slog.LevelDebug, c.LogLevel)
	require.Equal(t, 2, c.QueueDepth)
	require.Equal(t, 90*time.Second, c.Timeout)
	require.True(t, c.SaveAudio)
	require.Equal(t, defaultPresets, c.VoicePresets)
}

func TestFromEnvRequiresToken(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := FromEnv()
	require.ErrorContains(t, err, "API_KEY")
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	t.Setenv("API_KEY", "secret")

	t.Run("bad queue depth", func(t *testing.T) {
		t.Setenv("GENERATE_QUEUE_DEPTH", "many")

		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("GENERATE_TIMEOUT", "soon")

		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "chatty")

		_, err := FromEnv()
		require.Error(t, err)
	})
}

func TestVoicePresetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")

	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  - mia\n  - noah\n"), 0o644))

	t.Setenv("API_KEY", "secret")
	t.Setenv("VOICE_PRESETS", path)

	c, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, []string{"mia", "noah"}, c.VoicePresets)
}

func TestVoicePresetsFileExpandsEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")

	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  - ${PRESET_VOICE}\n"), 0o644))

	t.Setenv("API_KEY", "secret")
	t.Setenv("VOICE_PRESETS", path)
	t.Setenv("PRESET_VOICE", "mia")

	c, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, []string{"mia"}, c.VoicePresets)
}

func TestSynthesizer(t *testing.T) {
	t.Run("local runtime backend probes", func(t *testing.T) {
		c := &Config{ModelURL: "http://127.0.0.1:8100"}

		s, prober, err := c.Synthesizer()
		require.NoError(t, err)
		require.NotNil(t, s)
		require.NotNil(t, prober)
	})

	t.Run("replicate backend has no load phase", func(t *testing.T) {
		c := &Config{ReplicateModel: "microsoft/vibevoice-1.5b", ReplicateToken: "r8_test"}

		s, prober, err := c.Synthesizer()
		require.NoError(t, err)
		require.NotNil(t, s)
		require.Nil(t, prober)
	})

	t.Run("invalid model url", func(t *testing.T) {
		c := &Config{ModelURL: "file:///model"}

		_, _, err := c.Synthesizer()
		require.Error(t, err)
	})
}
