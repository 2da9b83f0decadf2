package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Policy.MaxConcurrentUnits != 6 {
		t.Errorf("expected default max_concurrent_units 6, got %d", cfg.Policy.MaxConcurrentUnits)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got %q", cfg.Log.Level)
	}

	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("expected default log max_size_mb 10, got %d", cfg.Log.MaxSizeMB)
	}

	if cfg.History.Path == "" {
		t.Error("expected a non-empty default history path")
	}
}

func TestLoadFromPath(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
anthropic:
  api_key: test-key
  model: claude-sonnet-4-20250514
  use_bedrock: true
  aws_region: us-west-2
policy:
  max_concurrent_units: 4
vocabulary:
  path: /etc/swarm/vocab.yaml
log:
  level: debug
  file: /var/log/swarm.log
history:
  path: /tmp/history.db
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("expected api_key 'test-key', got %q", cfg.Anthropic.APIKey)
	}

	if cfg.Anthropic.Model != "claude-sonnet-4-20250514" {
		t.Errorf("expected model 'claude-sonnet-4-20250514', got %q", cfg.Anthropic.Model)
	}

	if !cfg.Anthropic.UseBedrock {
		t.Error("expected use_bedrock to be true")
	}

	if cfg.Anthropic.AWSRegion != "us-west-2" {
		t.Errorf("expected aws_region 'us-west-2', got %q", cfg.Anthropic.AWSRegion)
	}

	if cfg.Policy.MaxConcurrentUnits != 4 {
		t.Errorf("expected max_concurrent_units 4, got %d", cfg.Policy.MaxConcurrentUnits)
	}

	if cfg.Vocabulary.Path != "/etc/swarm/vocab.yaml" {
		t.Errorf("expected vocabulary path '/etc/swarm/vocab.yaml', got %q", cfg.Vocabulary.Path)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Log.Level)
	}

	if cfg.History.Path != "/tmp/history.db" {
		t.Errorf("expected history path '/tmp/history.db', got %q", cfg.History.Path)
	}
}

func TestLoadFromPathDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// A config that sets nothing should still get defaults.
	if err := os.WriteFile(configPath, []byte("anthropic:\n  api_key: k\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Policy.MaxConcurrentUnits != 6 {
		t.Errorf("expected default max_concurrent_units 6, got %d", cfg.Policy.MaxConcurrentUnits)
	}

	if cfg.Log.MaxBackups != 3 {
		t.Errorf("expected default log max_backups 3, got %d", cfg.Log.MaxBackups)
	}
}

func TestExpandEnv(t *testing.T) {
	// Set environment variable
	os.Setenv("TEST_VAR", "expanded-value")
	defer os.Unsetenv("TEST_VAR")

	result := expandEnv("${TEST_VAR}")
	if result != "expanded-value" {
		t.Errorf("expected 'expanded-value', got %q", result)
	}

	result = expandEnv("prefix-${TEST_VAR}-suffix")
	if result != "prefix-expanded-value-suffix" {
		t.Errorf("expected 'prefix-expanded-value-suffix', got %q", result)
	}
}

func TestGetUserConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	defer os.Unsetenv("XDG_CONFIG_HOME")

	dir := getUserConfigDir()
	expected := "/custom/config/swarm"
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}
