package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"
)

// Voices preferred for default speaker assignment, tried in order when a
// request carries no explicit speakers. Matches the upstream preset set;
// override with a VOICE_PRESETS file.
var defaultPresets = []string{
	"en-Alice_woman",
	"en-Carter_man",
	"en-Frank_man",
	"en-Maya_woman",
}

type presetsFile struct {
	Defaults []string `yaml:"defaults"`
}

func parseVoicePresets(path string) ([]string, error) {
	if path == "" {
		return defaultPresets, nil
	}

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var file presetsFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		return nil, err
	}

	return file.Defaults, nil
}
