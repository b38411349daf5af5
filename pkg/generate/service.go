package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/adrianliechti/vibevoice/pkg/admission"
	"github.com/adrianliechti/vibevoice/pkg/provider"
	"github.com/adrianliechti/vibevoice/pkg/voice"
	"github.com/adrianliechti/vibevoice/pkg/wav"

	"github.com/google/uuid"
)

// Service runs the generation pipeline: validate, parse, serialize access
// to the model, invoke it, and package the result.
type Service struct {
	registry    *voice.Registry
	synthesizer provider.Synthesizer
	prober      provider.Prober

	admission *admission.Controller

	timeout time.Duration
	saveDir string

	ready atomic.Bool
}

type Option func(*Service)

// WithTimeout bounds each model invocation. Zero means no deadline; the
// model call is long-running by nature and timeouts are primarily a
// caller-side concern.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// WithSaveDir persists a copy of every rendering to dir.
func WithSaveDir(dir string) Option {
	return func(s *Service) {
		s.saveDir = dir
	}
}

// WithProber gates generation on a model readiness probe. Until the probe
// succeeds, requests fail with ErrModelNotLoaded.
func WithProber(p provider.Prober) Option {
	return func(s *Service) {
		s.prober = p
	}
}

func New(registry *voice.Registry, synthesizer provider.Synthesizer, queueDepth int, options ...Option) *Service {
	s := &Service{
		registry:    registry,
		synthesizer: synthesizer,

		admission: admission.New(queueDepth),
	}

	for _, option := range options {
		option(s)
	}

	// Without a probe there is no load phase to wait out.
	if s.prober == nil {
		s.ready.Store(true)
	}

	return s
}

type Result struct {
	ID string

	// Audio holds 16-bit little-endian mono PCM.
	Audio      []byte
	SampleRate int
	Duration   float64

	Utterances int
	Elapsed    time.Duration
}

func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if !s.Ready() {
		return nil, ErrModelNotLoaded
	}

	plan, err := validate(req, s.registry)

	if err != nil {
		return nil, err
	}

	release, err := s.admission.Acquire(ctx)

	if err != nil {
		return nil, err
	}
	defer release()

	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()

	synthesis, err := s.synthesizer.Synthesize(ctx, plan.utterances, plan.voices, &provider.SynthesizeOptions{
		CFGScale: plan.cfgScale,
	})

	if err != nil {
		return nil, &ModelError{Err: err}
	}

	result := &Result{
		ID: "gen_" + uuid.NewString(),

		Audio:      synthesis.Content,
		SampleRate: synthesis.SampleRate,
		Duration:   wav.Duration(len(synthesis.Content), synthesis.SampleRate),

		Utterances: len(plan.utterances),
		Elapsed:    time.Since(started),
	}

	if s.saveDir != "" {
		s.save(req.Script, result)
	}

	return result, nil
}

// Ready reports whether the underlying model can serve requests.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// Voices lists the available voice names.
func (s *Service) Voices() []string {
	return s.registry.List()
}

// WatchReadiness polls the synthesizer until it reports healthy, then marks
// the service ready. Intended to run in its own goroutine; returns when the
// model is loaded or ctx is done.
func (s *Service) WatchReadiness(ctx context.Context, interval time.Duration) {
	if s.prober == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := s.prober.Probe(ctx)

		if err == nil {
			s.ready.Store(true)
			slog.Info("model loaded")

			return
		}

		slog.Debug("model not ready", "error", err)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// save writes the rendering to the output directory, named after the first
// characters of the script and a timestamp. Failures are logged, never
// surfaced: persistence is best-effort and not part of the response.
func (s *Service) save(text string, result *Result) {
	name := nonAlphanumeric.ReplaceAllString(text, "")

	if len(name) > 10 {
		name = name[:10]
	}

	if name == "" {
		name = "audio"
	}

	if err := os.MkdirAll(s.saveDir, 0o755); err != nil {
		slog.Error("create output directory", "dir", s.saveDir, "error", err)
		return
	}

	path := filepath.Join(s.saveDir, fmt.Sprintf("%s_%s.wav", name, time.Now().Format("060102150405")))

	if err := os.WriteFile(path, wav.Encode(result.Audio, result.SampleRate), 0o644); err != nil {
		slog.Error("save rendering", "path", path, "error", err)
		return
	}

	slog.Info("rendering saved", "path", path)
}
