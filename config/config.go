package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"
)

// Config is built once at startup from the environment and stays immutable
// for the life of the process.
type Config struct {
	Address string

	Token string

	VoicesDir    string
	VoicePresets []string

	ModelURL string

	ReplicateModel string
	ReplicateToken string

	QueueDepth int
	Timeout    time.Duration
	RateLimit  float64 // generations per minute, 0 disables

	SaveAudio bool
	OutputDir string

	LogLevel slog.Level
	Reload   bool
}

func FromEnv() (*Config, error) {
	c := &Config{
		Address: net.JoinHostPort(envString("SERVER_HOST", ""), envString("SERVER_PORT", "8000")),

		Token: os.Getenv("API_KEY"),

		VoicesDir: envString("VOICES_DIR", "voices"),

		ModelURL: envString("MODEL_URL", "http://127.0.0.1:8100"),

		ReplicateModel: os.Getenv("REPLICATE_MODEL"),
		ReplicateToken: os.Getenv("REPLICATE_API_TOKEN"),

		OutputDir: envString("OUTPUT_DIRECTORY", "outputs"),

		Reload: envBool("RELOAD"),

		SaveAudio: envBool("SAVE_GENERATED_AUDIO"),
	}

	if c.Token == "" {
		return nil, errors.New("API_KEY is required")
	}

	var err error

	if c.QueueDepth, err = envInt("GENERATE_QUEUE_DEPTH", 8); err != nil {
		return nil, err
	}

	if c.Timeout, err = envDuration("GENERATE_TIMEOUT"); err != nil {
		return nil, err
	}

	if c.RateLimit, err = envFloat("GENERATE_RATE"); err != nil {
		return nil, err
	}

	if c.LogLevel, err = parseLogLevel(envString("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if c.VoicePresets, err = parseVoicePresets(os.Getenv("VOICE_PRESETS")); err != nil {
		return nil, err
	}

	return c, nil
}

func envString(name, fallback string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}

	return fallback
}

func envBool(name string) bool {
	val, _ := strconv.ParseBool(os.Getenv(name))
	return val
}

func envInt(name string, fallback int) (int, error) {
	val := os.Getenv(name)

	if val == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(val)

	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return n, nil
}

func envFloat(name string) (float64, error) {
	val := os.Getenv(name)

	if val == "" {
		return 0, nil
	}

	f, err := strconv.ParseFloat(val, 64)

	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return f, nil
}

func envDuration(name string) (time.Duration, error) {
	val := os.Getenv(name)

	if val == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(val)

	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return d, nil
}

func parseLogLevel(val string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(val)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return level, nil
}
