package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dowserhq/dowser/internal/research"
)

// LoadPrompts reads a prompt-profile YAML file. Unset entries fall back to
// the built-in templates when the profile is applied to the engine. A
// missing file is not an error; the defaults are returned.
func LoadPrompts(path string) (research.Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return research.DefaultPrompts(), nil
		}
		return research.Prompts{}, fmt.Errorf("reading prompt profile: %w", err)
	}

	var p research.Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return research.Prompts{}, fmt.Errorf("parsing prompt profile %s: %w", path, err)
	}
	return p, nil
}

// DefaultPromptsPath returns the user prompt-profile location,
// ~/.config/dowser/prompts.yaml.
func DefaultPromptsPath() string {
	return filepath.Join(userConfigDir(), "prompts.yaml")
}
