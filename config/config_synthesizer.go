package config

import (
	"github.com/adrianliechti/vibevoice/pkg/limiter"
	"github.com/adrianliechti/vibevoice/pkg/otel"
	"github.com/adrianliechti/vibevoice/pkg/provider"
	"github.com/adrianliechti/vibevoice/pkg/provider/replicate"
	"github.com/adrianliechti/vibevoice/pkg/provider/vibevoice"

	"golang.org/x/time/rate"
)

// Synthesizer builds the model backend: a hosted Replicate model when
// REPLICATE_MODEL is set, otherwise the local runtime at MODEL_URL. The
// returned prober is nil for backends without a load phase.
func (c *Config) Synthesizer() (provider.Synthesizer, provider.Prober, error) {
	s, prober, err := c.createSynthesizer()

	if err != nil {
		return nil, nil, err
	}

	if c.RateLimit > 0 {
		s = limiter.NewSynthesizer(rate.NewLimiter(rate.Limit(c.RateLimit/60), 1), s)
	}

	return s, prober, nil
}

func (c *Config) createSynthesizer() (provider.Synthesizer, provider.Prober, error) {
	if c.ReplicateModel != "" {
		s, err := replicate.NewSynthesizer(c.ReplicateModel, replicate.WithToken(c.ReplicateToken))

		if err != nil {
			return nil, nil, err
		}

		return otel.NewSynthesizer("replicate", c.ReplicateModel, s), nil, nil
	}

	client, err := vibevoice.New(c.ModelURL)

	if err != nil {
		return nil, nil, err
	}

	return otel.NewSynthesizer("vibevoice", c.ModelURL, client), client, nil
}
