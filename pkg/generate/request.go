package generate

import (
	"strings"

	"github.com/adrianliechti/vibevoice/pkg/provider"
	"github.com/adrianliechti/vibevoice/pkg/script"
	"github.com/adrianliechti/vibevoice/pkg/voice"
)

const (
	DefaultSpeakers = 2
	DefaultCFGScale = 1.3

	minSpeakers = 1
	maxSpeakers = 4

	minCFGScale = 1.0
	maxCFGScale = 2.0
)

type Request struct {
	Script string `json:"script"`

	NumSpeakers int      `json:"num_speakers"`
	Speakers    []string `json:"speakers"`

	CFGScale float64 `json:"cfg_scale"`
}

// ApplyDefaults fills zero-valued fields with the documented defaults.
// Called after JSON decoding, where an omitted field and its zero value are
// indistinguishable; both ranges exclude zero, so nothing valid is masked.
func (r *Request) ApplyDefaults() {
	if r.NumSpeakers == 0 {
		r.NumSpeakers = DefaultSpeakers
	}

	if r.CFGScale == 0 {
		r.CFGScale = DefaultCFGScale
	}
}

// plan is a validated, normalized generation request.
type plan struct {
	utterances []provider.Utterance
	voices     []provider.Voice

	cfgScale float64
}

// validate checks the request against the registry and normalizes it.
// Checks run in order and short-circuit on the first failure; no expensive
// work happens before all of them pass.
func validate(req Request, registry *voice.Registry) (*plan, error) {
	if strings.TrimSpace(req.Script) == "" {
		return nil, script.ErrEmptyScript
	}

	if req.NumSpeakers < minSpeakers || req.NumSpeakers > maxSpeakers {
		return nil, ErrInvalidSpeakerCount
	}

	if req.CFGScale < minCFGScale || req.CFGScale > maxCFGScale {
		return nil, ErrInvalidGuidanceScale
	}

	names := req.Speakers

	// Oversupplied lists are trimmed rather than rejected: the speaker list
	// is a parallel array indexed by the script's speaker slots, not a
	// strict arity token.
	if len(names) > req.NumSpeakers {
		names = names[:req.NumSpeakers]
	}

	voices := make([]provider.Voice, 0, req.NumSpeakers)

	for _, name := range names {
		v, err := registry.Resolve(name)

		if err != nil {
			return nil, &UnknownVoiceError{Name: name}
		}

		voices = append(voices, v)
	}

	// Undersupplied lists are padded from the registry defaults.
	if len(voices) < req.NumSpeakers {
		assigned := map[string]bool{}

		for _, v := range voices {
			assigned[v.Name] = true
		}

		for _, v := range registry.Defaults(registry.Len()) {
			if len(voices) == req.NumSpeakers {
				break
			}

			if assigned[v.Name] {
				continue
			}

			voices = append(voices, v)
			assigned[v.Name] = true
		}
	}

	if len(voices) < req.NumSpeakers {
		return nil, ErrInsufficientVoices
	}

	utterances, err := script.Parse(req.Script, req.NumSpeakers)

	if err != nil {
		return nil, err
	}

	return &plan{
		utterances: utterances,
		voices:     voices,

		cfgScale: req.CFGScale,
	}, nil
}
