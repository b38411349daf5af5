// Package voice maintains the inventory of reference voice samples. The
// inventory is scanned once at startup and is immutable for the life of the
// process; adding samples requires a restart.
package voice

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrianliechti/vibevoice/pkg/provider"
)

var ErrNotFound = errors.New("voice not found")

var sampleExtensions = []string{
	".wav",
	".mp3",
	".flac",
	".ogg",
	".m4a",
	".aac",
}

type Registry struct {
	voices map[string]provider.Voice
	names  []string

	preferred []string
}

type Option func(*Registry)

// WithPreferred sets the voice names tried first when a request omits
// explicit speaker assignments.
func WithPreferred(names ...string) Option {
	return func(r *Registry) {
		r.preferred = names
	}
}

// New scans dir for voice samples. Files with unrecognized extensions are
// ignored. A missing directory yields an empty registry, not an error.
func New(dir string, options ...Option) (*Registry, error) {
	r := &Registry{
		voices: map[string]provider.Voice{},
	}

	for _, option := range options {
		option(r)
	}

	entries, err := os.ReadDir(dir)

	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("voices directory not found", "dir", dir)
			return r, nil
		}

		return nil, fmt.Errorf("scan voices directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))

		if !slices.Contains(sampleExtensions, ext) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		r.voices[name] = provider.Voice{
			Name: name,
			Path: filepath.Join(dir, entry.Name()),
		}
	}

	r.names = make([]string, 0, len(r.voices))

	for name := range r.voices {
		r.names = append(r.names, name)
	}

	slices.Sort(r.names)

	if len(r.names) == 0 {
		slog.Warn("no voice samples found", "dir", dir)
	}

	return r, nil
}

// List returns all voice names in lexicographic order.
func (r *Registry) List() []string {
	return slices.Clone(r.names)
}

func (r *Registry) Len() int {
	return len(r.names)
}

func (r *Registry) Resolve(name string) (provider.Voice, error) {
	v, ok := r.voices[name]

	if !ok {
		return provider.Voice{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return v, nil
}

// Defaults returns up to n voices for requests without explicit speaker
// assignments: preferred names that exist in the inventory first, then the
// remaining inventory in listing order. The result is deterministic for a
// fixed inventory, so repeated requests get identical assignments. Fewer
// than n voices are returned when the inventory is too small.
func (r *Registry) Defaults(n int) []provider.Voice {
	voices := make([]provider.Voice, 0, n)
	seen := map[string]bool{}

	for _, name := range r.preferred {
		if len(voices) == n {
			break
		}

		v, ok := r.voices[name]

		if !ok || seen[name] {
			continue
		}

		voices = append(voices, v)
		seen[name] = true
	}

	for _, name := range r.names {
		if len(voices) == n {
			break
		}

		if seen[name] {
			continue
		}

		voices = append(voices, r.voices[name])
		seen[name] = true
	}

	return voices
}
