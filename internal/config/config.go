package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DBPath       string     `yaml:"db_path"`
	LexiconPath  string     `yaml:"lexicon_path,omitempty"`
	TopK         int        `yaml:"top_k"`
	TraceEnabled bool       `yaml:"trace_enabled"`
	Thresholds   Thresholds `yaml:"thresholds"`
}

// Thresholds holds the duplicate classification thresholds
type Thresholds struct {
	Intent  float64 `yaml:"intent"`
	Lexical float64 `yaml:"lexical"`
}

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		DBPath:       filepath.Join(homeDir, ".featdup", "catalog.db"),
		LexiconPath:  "",
		TopK:         5,
		TraceEnabled: false,
		Thresholds: Thresholds{
			Intent:  0.7,
			Lexical: 0.3,
		},
	}
}

// Load reads configuration from file, creating it with defaults if it
// doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default() // Start with defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".featdup", "config.yaml")
}
