// Package config handles configuration loading for dowser. It supports XDG
// config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for dowser.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic" yaml:"anthropic"`
	Research  ResearchConfig  `mapstructure:"research" yaml:"research"`
	Bedrock   BedrockConfig   `mapstructure:"bedrock" yaml:"bedrock"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	// FinderModel is the model backing the Finder role.
	FinderModel string `mapstructure:"finder_model" yaml:"finder_model,omitempty"`
	// CriticModel is the model backing the Critic role.
	CriticModel string `mapstructure:"critic_model" yaml:"critic_model,omitempty"`
}

// ResearchConfig holds engine defaults.
type ResearchConfig struct {
	// MaxIterations is the refinement budget per subtask.
	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations"`
	// QualityThreshold is the accepting verdict score (1-10).
	QualityThreshold int `mapstructure:"quality_threshold" yaml:"quality_threshold"`
	// DebugLog is an optional path for the engine debug log.
	DebugLog string `mapstructure:"debug_log" yaml:"debug_log,omitempty"`
}

// BedrockConfig holds AWS Bedrock transport settings.
type BedrockConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Region  string `mapstructure:"region" yaml:"region,omitempty"`
	Profile string `mapstructure:"profile" yaml:"profile,omitempty"`
}

// Load loads configuration with this precedence (highest first):
// environment variables (ANTHROPIC_API_KEY), project config (.dowser.yaml in
// the current directory or a parent), user config
// (~/.config/dowser/config.yaml), built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	return cfg, nil
}

// Save writes the configuration to the user config file
// (~/.config/dowser/config.yaml), creating the directory if needed.
func Save(cfg *Config) error {
	dir := userConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("research.max_iterations", 5)
	v.SetDefault("research.quality_threshold", 5)
	v.SetDefault("bedrock.enabled", false)
}

func userConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "dowser")
}

// findProjectConfig walks upward from the working directory looking for
// .dowser.yaml.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".dowser.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnv expands ${VAR} references in a config value.
func expandEnv(s string) string {
	if strings.Contains(s, "${") {
		return os.ExpandEnv(s)
	}
	return s
}
