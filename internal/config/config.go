// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the console.
//
// Supports both TOML and JSON formats, with built-in defaults and
// environment variable overrides.
//
// Configuration file locations (in order of precedence):
//   - ~/.rfq-console/config.toml
//   - ~/.rfq-console/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete console configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	API    APIConfig    `toml:"api" json:"api"`
	Export ExportConfig `toml:"export" json:"export"`
	UI     UIConfig     `toml:"ui" json:"ui"`
}

// APIConfig locates the backend services.
type APIConfig struct {
	// BaseURL is the shared base of the quotation and knowledge-base
	// services.
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs bounds every request in seconds.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// ExportConfig controls where download documents land.
type ExportConfig struct {
	// DownloadDir is the directory for saved quotation and query
	// documents. Empty means ~/Downloads.
	DownloadDir string `toml:"download_dir" json:"download_dir"`
}

// UIConfig contains display preferences.
type UIConfig struct {
	// ShowHints toggles the keyboard shortcut hints in every view.
	ShowHints bool `toml:"show_hints" json:"show_hints"`
	// SpinnerTimer toggles the elapsed-time suffix on the loading
	// spinners.
	SpinnerTimer bool `toml:"spinner_timer" json:"spinner_timer"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:     "http://localhost:8000",
			TimeoutSecs: 30,
		},
		Export: ExportConfig{
			DownloadDir: "",
		},
		UI: UIConfig{
			ShowHints:    true,
			SpinnerTimer: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the console's configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".rfq-console"), nil
}

// ConfigPathTOML returns the TOML config file path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file path.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration: TOML first, then JSON, then defaults.
// Environment overrides apply last in every case.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, err
			}
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadJSON(cfg, path); err != nil {
				return nil, err
			}
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

// LoadFromPath reads a config file, dispatching on its extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = loadTOML(cfg, path)
	case ".json":
		err = loadJSON(cfg, path)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

// loadTOML merges a TOML file over cfg.
func loadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadJSON merges a JSON file over cfg.
func loadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ValidationError{"api.base_url", "must be an http(s) URL"}
	}
	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 300 {
		return ValidationError{"api.timeout_secs", "must be between 1 and 300"}
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variables on top of the loaded
// configuration:
//   - RFQCONSOLE_API_URL: overrides api.base_url
//   - RFQCONSOLE_TIMEOUT: overrides api.timeout_secs
//   - RFQCONSOLE_DOWNLOAD_DIR: overrides export.download_dir
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("RFQCONSOLE_API_URL"); u != "" {
		c.API.BaseURL = u
	}
	if t := os.Getenv("RFQCONSOLE_TIMEOUT"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil {
			c.API.TimeoutSecs = secs
		}
	}
	if dir := os.Getenv("RFQCONSOLE_DOWNLOAD_DIR"); dir != "" {
		c.Export.DownloadDir = dir
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration as TOML to the default location.
func Save(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first
// use. Load failures fall back to defaults.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}
