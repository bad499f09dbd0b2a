// Package config loads and saves the padatious CLI's own configuration.
// This is collaborator-layer code: the core engine packages (intents,
// domain, padaos) never read a config file themselves.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the padatious CLI configuration.
type Config struct {
	// CacheDir is the directory under which per-language artifact
	// subdirectories are stored (spec.md §6: "one subdirectory per
	// language").
	CacheDir string `json:"cache_dir,omitempty"`

	// Language is the default language subdirectory used when none is
	// given on the command line.
	Language string `json:"language,omitempty"`

	// CacheSize is stored in the config file and checked by Validate (it
	// must not be negative). No package or command in this module reads it;
	// the padaos fast path keeps every compiled template.
	CacheSize int `json:"cache_size,omitempty"`

	// Port is the listen port for `padatious serve`.
	Port int `json:"port,omitempty"`

	// TopKDomains is stored in the config file and checked by Validate (it
	// must not be negative). domain.Container.CalcIntents does not read it;
	// it falls back to domain.DefaultTopK when called with topK <= 0.
	TopKDomains int `json:"top_k_domains,omitempty"`
}

// Default returns the configuration used when no config file exists yet.
func Default() *Config {
	return &Config{
		Language:    "en",
		CacheSize:   100,
		Port:        8080,
		TopKDomains: 2,
	}
}

// Load reads the configuration at path, creating a default one if absent.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
		fmt.Printf("Created default configuration at %s\n", path)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.expandTilde()
	cfg.CacheDir = os.ExpandEnv(cfg.CacheDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for obviously invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("invalid cache_size: %d", c.CacheSize)
	}
	if c.TopKDomains < 0 {
		return fmt.Errorf("invalid top_k_domains: %d", c.TopKDomains)
	}
	return nil
}

// expandTilde expands a leading "~/" in CacheDir to the user's home dir.
func (c *Config) expandTilde() {
	if !strings.HasPrefix(c.CacheDir, "~/") && c.CacheDir != "~" {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	if c.CacheDir == "~" {
		c.CacheDir = home
		return
	}
	c.CacheDir = filepath.Join(home, c.CacheDir[2:])
}
