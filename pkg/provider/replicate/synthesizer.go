// Package replicate renders dialogue through a VibeVoice model hosted on
// Replicate, for deployments without local GPU capacity. Voice names must
// match the presets the hosted model ships with.
package replicate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/adrianliechti/vibevoice/pkg/provider"
	"github.com/adrianliechti/vibevoice/pkg/script"
	"github.com/adrianliechti/vibevoice/pkg/wav"

	"github.com/google/uuid"
	"github.com/replicate/replicate-go"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type PredictionInput = replicate.PredictionInput
type PredictionOutput = replicate.PredictionOutput

type FileOutput = replicate.FileOutput

type Synthesizer struct {
	*Config

	client *replicate.Client
}

func NewSynthesizer(model string, options ...Option) (*Synthesizer, error) {
	if model == "" {
		return nil, errors.New("model is required")
	}

	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	client, err := replicate.NewClient(cfg.Options()...)

	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		Config: cfg,

		client: client,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, utterances []provider.Utterance, voices []provider.Voice, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	speakers := make([]string, 0, len(voices))

	for _, v := range voices {
		speakers = append(speakers, v.Name)
	}

	input := PredictionInput{
		"script": script.Render(utterances),

		"speakers": speakers,
	}

	if options.CFGScale > 0 {
		input["cfg_scale"] = options.CFGScale
	}

	output, err := s.client.RunWithOptions(ctx, s.model, input, nil, replicate.WithBlockUntilDone(), replicate.WithFileOutput())

	if err != nil {
		return nil, err
	}

	data, err := convertAudio(output)

	if err != nil {
		return nil, err
	}

	pcm, sampleRate, err := wav.Decode(data)

	if err != nil {
		return nil, fmt.Errorf("decode prediction output: %w", err)
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:    pcm,
		SampleRate: sampleRate,
	}, nil
}

func convertAudio(output PredictionOutput) ([]byte, error) {
	file, ok := output.(*FileOutput)

	if !ok {
		return nil, errors.New("unsupported output")
	}

	return io.ReadAll(file)
}
