package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dowserhq/dowser/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify dowser configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/dowser/config.yaml
Project-specific overrides can be placed in .dowser.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	// Mask API key if set
	apiKeyDisplay := "(not set)"
	if cfg.Anthropic.APIKey != "" {
		apiKeyDisplay = "****"
	}

	fmt.Printf("anthropic.api_key: %s\n", apiKeyDisplay)
	fmt.Printf("anthropic.finder_model: %s\n", orDefault(cfg.Anthropic.FinderModel))
	fmt.Printf("anthropic.critic_model: %s\n", orDefault(cfg.Anthropic.CriticModel))
	fmt.Printf("research.max_iterations: %d\n", cfg.Research.MaxIterations)
	fmt.Printf("research.quality_threshold: %d\n", cfg.Research.QualityThreshold)
	fmt.Printf("research.debug_log: %s\n", orDefault(cfg.Research.DebugLog))
	fmt.Printf("bedrock.enabled: %t\n", cfg.Bedrock.Enabled)
	fmt.Printf("bedrock.region: %s\n", orDefault(cfg.Bedrock.Region))
	fmt.Printf("bedrock.profile: %s\n", orDefault(cfg.Bedrock.Profile))
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		if cfg.Anthropic.APIKey == "" {
			return "(not set)", nil
		}
		return "****", nil
	case "anthropic.finder_model":
		return orDefault(cfg.Anthropic.FinderModel), nil
	case "anthropic.critic_model":
		return orDefault(cfg.Anthropic.CriticModel), nil
	case "research.max_iterations":
		return strconv.Itoa(cfg.Research.MaxIterations), nil
	case "research.quality_threshold":
		return strconv.Itoa(cfg.Research.QualityThreshold), nil
	case "research.debug_log":
		return orDefault(cfg.Research.DebugLog), nil
	case "bedrock.enabled":
		return strconv.FormatBool(cfg.Bedrock.Enabled), nil
	case "bedrock.region":
		return orDefault(cfg.Bedrock.Region), nil
	case "bedrock.profile":
		return orDefault(cfg.Bedrock.Profile), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.finder_model":
		cfg.Anthropic.FinderModel = value
	case "anthropic.critic_model":
		cfg.Anthropic.CriticModel = value
	case "research.max_iterations":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid value for max_iterations: %s", value)
		}
		cfg.Research.MaxIterations = n
	case "research.quality_threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 10 {
			return fmt.Errorf("invalid value for quality_threshold (expected 1-10): %s", value)
		}
		cfg.Research.QualityThreshold = n
	case "research.debug_log":
		cfg.Research.DebugLog = value
	case "bedrock.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for bedrock.enabled: %w", err)
		}
		cfg.Bedrock.Enabled = b
	case "bedrock.region":
		cfg.Bedrock.Region = value
	case "bedrock.profile":
		cfg.Bedrock.Profile = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
