package provider

import (
	"context"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, script []Utterance, voices []Voice, options *SynthesizeOptions) (*Synthesis, error)
}

// Prober is implemented by synthesizers backed by a runtime that loads its
// model asynchronously. Probe returns nil once the runtime can serve.
type Prober interface {
	Probe(ctx context.Context) error
}

type SynthesizeOptions struct {
	// CFGScale controls how strongly the model adheres to the voice
	// conditioning versus free variation.
	CFGScale float64
}

type Synthesis struct {
	ID    string
	Model string

	// Content holds 16-bit little-endian mono PCM samples.
	Content    []byte
	SampleRate int
}
