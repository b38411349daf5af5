package script

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Run("explicit when any line matches", func(t *testing.T) {
		text := "just an intro line\nSpeaker 1: hello\nanother line"

		if Classify(text) != ModeExplicit {
			t.Error("expected explicit mode")
		}
	})

	t.Run("label is case-insensitive", func(t *testing.T) {
		if Classify("SPEAKER 0: hi") != ModeExplicit {
			t.Error("expected explicit mode")
		}

		if Classify("speaker 2 : hi") != ModeExplicit {
			t.Error("expected explicit mode")
		}
	})

	t.Run("auto when no line matches", func(t *testing.T) {
		text := "hello there\nhow are you\nSpeakerless line"

		if Classify(text) != ModeAuto {
			t.Error("expected auto mode")
		}
	})
}

func TestParseExplicit(t *testing.T) {
	t.Run("declared indices preserved", func(t *testing.T) {
		text := "Speaker 0: Hi\nSpeaker 1: Hello\nSpeaker 0: Bye"

		utterances, err := Parse(text, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(utterances) != 3 {
			t.Fatalf("expected 3 utterances, got %d", len(utterances))
		}

		for i, want := range []int{0, 1, 0} {
			if utterances[i].Speaker != want {
				t.Errorf("utterance %d: expected speaker %d, got %d", i, want, utterances[i].Speaker)
			}
		}

		if utterances[0].Text != "Hi" {
			t.Errorf("expected 'Hi', got %q", utterances[0].Text)
		}
	})

	t.Run("out-of-range index wraps modulo speaker count", func(t *testing.T) {
		text := "Speaker 5: wrapped"

		utterances, err := Parse(text, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if utterances[0].Speaker != 1 {
			t.Errorf("expected speaker 1, got %d", utterances[0].Speaker)
		}
	})

	t.Run("empty lines skipped", func(t *testing.T) {
		text := "Speaker 0: one\n\n\nSpeaker 1: two"

		utterances, err := Parse(text, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(utterances) != 2 {
			t.Errorf("expected 2 utterances, got %d", len(utterances))
		}
	})

	t.Run("unlabeled line is an error", func(t *testing.T) {
		text := "Speaker 0: one\nstray continuation\nSpeaker 1: two"

		_, err := Parse(text, 2)

		var lineErr *UnattributedLineError
		if !errors.As(err, &lineErr) {
			t.Fatalf("expected UnattributedLineError, got %v", err)
		}

		if lineErr.Number != 2 {
			t.Errorf("expected line 2, got %d", lineErr.Number)
		}
	})
}

func TestParseAuto(t *testing.T) {
	t.Run("round-robin assignment", func(t *testing.T) {
		text := "one\ntwo\nthree\nfour\nfive"

		utterances, err := Parse(text, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(utterances) != 5 {
			t.Fatalf("expected 5 utterances, got %d", len(utterances))
		}

		for i, u := range utterances {
			if u.Speaker != i%2 {
				t.Errorf("utterance %d: expected speaker %d, got %d", i, i%2, u.Speaker)
			}
		}
	})

	t.Run("empty lines do not consume a rotation slot", func(t *testing.T) {
		text := "one\n\ntwo\n\n\nthree"

		utterances, err := Parse(text, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(utterances) != 3 {
			t.Fatalf("expected 3 utterances, got %d", len(utterances))
		}

		for i, u := range utterances {
			if u.Speaker != i {
				t.Errorf("utterance %d: expected speaker %d, got %d", i, i, u.Speaker)
			}
		}
	})

	t.Run("single speaker", func(t *testing.T) {
		utterances, err := Parse("one\ntwo", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, u := range utterances {
			if u.Speaker != 0 {
				t.Errorf("expected speaker 0, got %d", u.Speaker)
			}
		}
	})
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n", " \t \n "} {
		if _, err := Parse(text, 2); !errors.Is(err, ErrEmptyScript) {
			t.Errorf("input %q: expected ErrEmptyScript, got %v", text, err)
		}
	}
}

func TestRender(t *testing.T) {
	utterances, err := Parse("hi\nthere", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rendered := Render(utterances)

	if rendered != "Speaker 1: hi\nSpeaker 2: there" {
		t.Errorf("unexpected rendering: %q", rendered)
	}
}
