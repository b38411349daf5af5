package otel

import (
	"context"

	"github.com/adrianliechti/vibevoice/pkg/provider"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type Synthesizer interface {
	Observable
	provider.Synthesizer
}

type observableSynthesizer struct {
	model    string
	provider string

	synthesizer provider.Synthesizer
}

func NewSynthesizer(provider, model string, p provider.Synthesizer) Synthesizer {
	return &observableSynthesizer{
		synthesizer: p,

		model:    model,
		provider: provider,
	}
}

func (p *observableSynthesizer) otelSetup() {
}

func (p *observableSynthesizer) Synthesize(ctx context.Context, script []provider.Utterance, voices []provider.Voice, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "synthesize "+p.model)
	defer span.End()

	span.SetAttributes(
		attribute.Int("utterances", len(script)),
		attribute.Int("voices", len(voices)),
	)

	if options != nil && options.CFGScale > 0 {
		span.SetAttributes(attribute.Float64("cfg_scale", options.CFGScale))
	}

	result, err := p.synthesizer.Synthesize(ctx, script, voices, options)

	return result, err
}
