// Package script turns free-form dialogue text into an ordered list of
// speaker-attributed utterances.
//
// Two line grammars are recognized. If any line of the input matches the
// explicit form "Speaker <N>: <text>", the whole script is parsed in
// explicit mode and every line must carry a speaker label. Otherwise each
// non-empty line becomes one utterance and speakers are assigned
// round-robin across the declared speaker count.
package script

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrianliechti/vibevoice/pkg/provider"
)

type Mode int

const (
	ModeAuto Mode = iota
	ModeExplicit
)

var ErrEmptyScript = errors.New("script cannot be empty")

// UnattributedLineError reports a non-empty line without a speaker label in
// an otherwise explicit script. Silently misattributing dialogue is worse
// than failing fast.
type UnattributedLineError struct {
	Number int
	Line   string
}

func (e *UnattributedLineError) Error() string {
	return fmt.Sprintf("line %d has no speaker label: %q", e.Number, e.Line)
}

var explicitLine = regexp.MustCompile(`(?i)^speaker\s+(\d+)\s*:\s*(.*)$`)

// Classify scans the whole input and decides which grammar applies.
func Classify(text string) Mode {
	for _, line := range strings.Split(text, "\n") {
		if explicitLine.MatchString(strings.TrimSpace(line)) {
			return ModeExplicit
		}
	}

	return ModeAuto
}

// Parse converts a script into utterances in playback order. Speaker
// indices referencing a slot beyond numSpeakers are reduced modulo
// numSpeakers so malformed explicit scripts degrade instead of aborting.
func Parse(text string, numSpeakers int) ([]provider.Utterance, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyScript
	}

	if numSpeakers < 1 {
		return nil, fmt.Errorf("invalid speaker count: %d", numSpeakers)
	}

	switch Classify(text) {
	case ModeExplicit:
		return parseExplicit(text, numSpeakers)

	default:
		return parseAuto(text, numSpeakers), nil
	}
}

func parseExplicit(text string, numSpeakers int) ([]provider.Utterance, error) {
	var utterances []provider.Utterance

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		match := explicitLine.FindStringSubmatch(line)

		if match == nil {
			return nil, &UnattributedLineError{
				Number: i + 1,
				Line:   line,
			}
		}

		speaker, err := strconv.Atoi(match[1])

		if err != nil {
			return nil, &UnattributedLineError{
				Number: i + 1,
				Line:   line,
			}
		}

		utterances = append(utterances, provider.Utterance{
			Speaker: speaker % numSpeakers,
			Text:    strings.TrimSpace(match[2]),
		})
	}

	return utterances, nil
}

func parseAuto(text string, numSpeakers int) []provider.Utterance {
	var utterances []provider.Utterance

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		utterances = append(utterances, provider.Utterance{
			Speaker: len(utterances) % numSpeakers,
			Text:    line,
		})
	}

	return utterances
}

// Render formats utterances back into the canonical one-indexed script text
// consumed by the model runtimes.
func Render(utterances []provider.Utterance) string {
	lines := make([]string, 0, len(utterances))

	for _, u := range utterances {
		lines = append(lines, fmt.Sprintf("Speaker %d: %s", u.Speaker+1, u.Text))
	}

	return strings.Join(lines, "\n")
}
