// Package config handles configuration loading and management for Swarm.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/swarmforge/swarm/internal/classify"
)

// Config holds all configuration for Swarm.
type Config struct {
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	Policy     PolicyConfig     `mapstructure:"policy"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Log        LogConfig        `mapstructure:"log"`
	History    HistoryConfig    `mapstructure:"history"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// PolicyConfig holds planning and execution limits.
type PolicyConfig struct {
	MaxConcurrentUnits int `mapstructure:"max_concurrent_units"`
}

// VocabularyConfig points to an optional classification vocabulary file.
type VocabularyConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// HistoryConfig holds run history storage settings.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, SWARM_*)
// 2. Project config (.swarm.yaml in current directory or parent)
// 3. User config (~/.config/swarm/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("SWARM")

	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("anthropic.model", "SWARM_MODEL")
	v.BindEnv("policy.max_concurrent_units", "SWARM_MAX_CONCURRENT_UNITS")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
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

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("policy.max_concurrent_units", cfg.Policy.MaxConcurrentUnits)
	v.Set("vocabulary.path", cfg.Vocabulary.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("log.max_backups", cfg.Log.MaxBackups)
	v.Set("log.max_age_days", cfg.Log.MaxAgeDays)
	v.Set("history.path", cfg.History.Path)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Policy: PolicyConfig{
			MaxConcurrentUnits: classify.DefaultMaxConcurrentUnits,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		History: HistoryConfig{
			Path: defaultHistoryPath(),
		},
	}
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Anthropic defaults
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_bedrock", false)

	// Policy defaults
	v.SetDefault("policy.max_concurrent_units", classify.DefaultMaxConcurrentUnits)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 30)

	// History defaults
	v.SetDefault("history.path", defaultHistoryPath())
}

// defaultHistoryPath returns the default run history database location.
func defaultHistoryPath() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "swarm", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".swarm", "history.db")
	}
	return filepath.Join(home, ".local", "share", "swarm", "history.db")
}

// getUserConfigDir returns the XDG config directory for Swarm.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "swarm")
	}

	// Fall back to ~/.config/swarm
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "swarm")
	}
	return filepath.Join(home, ".config", "swarm")
}

// findProjectConfig searches for .swarm.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".swarm.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}
