// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the VoxStudio installer.
//
// Supports TOML configuration with sensible defaults and environment
// variable overrides.
//
// Configuration file locations (in order of precedence):
//   - ~/.voxstudio/installer.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/voxstudio-installer/internal/host"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete installer configuration.
type Config struct {
	// Version is the config schema version
	Version string `toml:"version"`

	// Daemon configuration
	Daemon DaemonConfig `toml:"daemon"`

	// Install defaults
	Install InstallConfig `toml:"install"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// DaemonConfig contains helper daemon connection configuration.
type DaemonConfig struct {
	// URL is the daemon API base URL
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
	// MaxRetries for transient connection failures
	MaxRetries int `toml:"max_retries"`
}

// InstallConfig contains default installation options. They pre-fill the
// wizard; the user can change all of them interactively.
type InstallConfig struct {
	// Path overrides the daemon-suggested install directory (empty = ask daemon)
	Path string `toml:"path"`
	// ModelVariant is the default voice-model bundle: "standard", "large", "small"
	ModelVariant string `toml:"model_variant"`
	// UseGPU requests hardware-accelerated inference setup by default
	UseGPU bool `toml:"use_gpu"`
}

// UIConfig contains presentation configuration.
type UIConfig struct {
	// PlainOutput forces plain text output without the interactive wizard
	PlainOutput bool `toml:"plain_output"`
	// NoColor disables ANSI colors
	NoColor bool `toml:"no_color"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",
		Daemon: DaemonConfig{
			URL:         "http://127.0.0.1:49613",
			TimeoutSecs: 10,
			MaxRetries:  2,
		},
		Install: InstallConfig{
			ModelVariant: string(host.VariantStandard),
			UseGPU:       true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the installer's configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".voxstudio"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "installer.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// Save writes the configuration to the default config path.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS, OVERRIDES, VALIDATION
// =============================================================================

// SetDefaults fills in zero values with defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Daemon.URL == "" {
		c.Daemon.URL = def.Daemon.URL
	}
	if c.Daemon.TimeoutSecs == 0 {
		c.Daemon.TimeoutSecs = def.Daemon.TimeoutSecs
	}
	if c.Daemon.MaxRetries == 0 {
		c.Daemon.MaxRetries = def.Daemon.MaxRetries
	}
	if c.Install.ModelVariant == "" {
		c.Install.ModelVariant = def.Install.ModelVariant
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("VOXSTUDIO_DAEMON_URL"); v != "" {
		c.Daemon.URL = v
	}
	if v := os.Getenv("VOXSTUDIO_DAEMON_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Daemon.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("VOXSTUDIO_INSTALL_PATH"); v != "" {
		c.Install.Path = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.UI.NoColor = true
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Daemon.URL == "" {
		return fmt.Errorf("daemon.url must not be empty")
	}
	if c.Daemon.TimeoutSecs <= 0 {
		return fmt.Errorf("daemon.timeout_secs must be positive, got %d", c.Daemon.TimeoutSecs)
	}
	if c.Daemon.MaxRetries < 0 {
		return fmt.Errorf("daemon.max_retries must not be negative, got %d", c.Daemon.MaxRetries)
	}
	if v := host.ModelVariant(c.Install.ModelVariant); !v.Valid() {
		return fmt.Errorf("install.model_variant %q is not one of standard, large, small", c.Install.ModelVariant)
	}
	return nil
}

// ClientConfig converts the daemon section into a host client configuration.
func (c *Config) ClientConfig() *host.ClientConfig {
	return &host.ClientConfig{
		BaseURL:    c.Daemon.URL,
		Timeout:    time.Duration(c.Daemon.TimeoutSecs) * time.Second,
		MaxRetries: c.Daemon.MaxRetries,
	}
}
