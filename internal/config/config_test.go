package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
anthropic:
  api_key: test-key
  finder_model: claude-sonnet-4-20250514
research:
  max_iterations: 7
  quality_threshold: 6
bedrock:
  enabled: true
  region: us-west-2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want test-key", cfg.Anthropic.APIKey)
	}
	if cfg.Research.MaxIterations != 7 {
		t.Errorf("MaxIterations = %d, want 7", cfg.Research.MaxIterations)
	}
	if cfg.Research.QualityThreshold != 6 {
		t.Errorf("QualityThreshold = %d, want 6", cfg.Research.QualityThreshold)
	}
	if !cfg.Bedrock.Enabled || cfg.Bedrock.Region != "us-west-2" {
		t.Errorf("Bedrock = %+v, want enabled in us-west-2", cfg.Bedrock)
	}
}

func TestLoadFromPathDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("anthropic:\n  api_key: k\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Research.MaxIterations != 5 {
		t.Errorf("default MaxIterations = %d, want 5", cfg.Research.MaxIterations)
	}
	if cfg.Research.QualityThreshold != 5 {
		t.Errorf("default QualityThreshold = %d, want 5", cfg.Research.QualityThreshold)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("DOWSER_TEST_KEY", "secret")

	if got := expandEnv("${DOWSER_TEST_KEY}"); got != "secret" {
		t.Errorf("expandEnv = %q, want secret", got)
	}
	if got := expandEnv("plain-value"); got != "plain-value" {
		t.Errorf("expandEnv should leave plain values alone, got %q", got)
	}
}

func TestLoadPromptsMissingFile(t *testing.T) {
	p, err := LoadPrompts(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing profile should not error: %v", err)
	}
	if p.Decomposition == "" {
		t.Error("missing profile should yield the default templates")
	}
}

func TestLoadPromptsOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	if err := os.WriteFile(path, []byte("synthesis: \"custom %s %s\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}
	if p.Synthesis != "custom %s %s" {
		t.Errorf("Synthesis = %q, want the override", p.Synthesis)
	}
	if p.Decomposition != "" {
		t.Errorf("unset templates should stay empty until applied to the engine, got %q", p.Decomposition)
	}
}
