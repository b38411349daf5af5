package generate

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSpeakerCount  = errors.New("num_speakers must be between 1 and 4")
	ErrInvalidGuidanceScale = errors.New("cfg_scale must be between 1.0 and 2.0")
	ErrInsufficientVoices   = errors.New("not enough voices available")

	ErrModelNotLoaded = errors.New("model is not loaded")
)

// UnknownVoiceError names a requested speaker that is not in the registry.
type UnknownVoiceError struct {
	Name string
}

func (e *UnknownVoiceError) Error() string {
	return fmt.Sprintf("speaker %q not found", e.Name)
}

// ModelError wraps a failure from the underlying model. The cause is for
// server-side logs only; callers get a generic message.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
