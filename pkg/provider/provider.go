package provider

// Utterance is one speaker-attributed line of dialogue. Speaker is a
// zero-based slot index into the voice assignment list.
type Utterance struct {
	Speaker int
	Text    string
}

// Voice is a named reference to a stored audio sample used to condition
// the model's output timbre for one speaker slot.
type Voice struct {
	Name string
	Path string
}
