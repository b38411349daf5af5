package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/adrianliechti/vibevoice/config"
	"github.com/adrianliechti/vibevoice/pkg/auth/static"
	"github.com/adrianliechti/vibevoice/pkg/generate"
	"github.com/adrianliechti/vibevoice/pkg/otel"
	"github.com/adrianliechti/vibevoice/pkg/voice"
	"github.com/adrianliechti/vibevoice/server"

	"github.com/joho/godotenv"
)

var version string

func main() {
	godotenv.Load()

	ctx := context.Background()

	cfg, err := config.FromEnv()

	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if otel.EnableTelemetry {
		if err := otel.Setup(ctx, "vibevoice", version); err != nil {
			slog.Error("telemetry setup failed", "error", err)
			os.Exit(1)
		}
	} else {
		level := cfg.LogLevel

		// Development mode always logs at debug.
		if cfg.Reload {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	}

	registry, err := voice.New(cfg.VoicesDir, voice.WithPreferred(cfg.VoicePresets...))

	if err != nil {
		slog.Error("voice registry setup failed", "dir", cfg.VoicesDir, "error", err)
		os.Exit(1)
	}

	synthesizer, prober, err := cfg.Synthesizer()

	if err != nil {
		slog.Error("synthesizer setup failed", "error", err)
		os.Exit(1)
	}

	options := []generate.Option{}

	if cfg.Timeout > 0 {
		options = append(options, generate.WithTimeout(cfg.Timeout))
	}

	if cfg.SaveAudio {
		options = append(options, generate.WithSaveDir(cfg.OutputDir))
	}

	if prober != nil {
		options = append(options, generate.WithProber(prober))
	}

	service := generate.New(registry, synthesizer, cfg.QueueDepth, options...)

	if prober != nil {
		go service.WatchReadiness(ctx, 5*time.Second)
	}

	provider, err := static.New(cfg.Token)

	if err != nil {
		slog.Error("auth setup failed", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg.Address, provider, service)

	if err != nil {
		slog.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server starting", "address", cfg.Address, "voices", registry.Len())

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
