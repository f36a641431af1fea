// Package clientcfg loads the client-side .sheetdeck.yaml configuration:
// where the service lives and how the client polls and downloads. The remote
// service's own configuration (API key, model) lives server-side and is
// managed through the /api/config endpoints instead.
package clientcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the per-directory config file name.
const DefaultFilename = ".sheetdeck.yaml"

// Default values. New() references them and no other code should
// duplicate them.
const (
	DefaultServerURL       = "http://localhost:8000"
	DefaultPollIntervalSec = 2
	DefaultPollMaxAttempts = 0 // unbounded
	DefaultDownloadDir     = "."
	DefaultLogLimit        = 50
)

// Config is the parsed .sheetdeck.yaml.
type Config struct {
	ServerURL       string `yaml:"server_url,omitempty"`
	PollIntervalSec int    `yaml:"poll_interval,omitempty"`
	PollMaxAttempts int    `yaml:"poll_max_attempts,omitempty"`
	DownloadDir     string `yaml:"download_dir,omitempty"`
	LogLimit        int    `yaml:"log_limit,omitempty"`
}

// New returns a Config with all defaults applied.
func New() *Config {
	return &Config{
		ServerURL:       DefaultServerURL,
		PollIntervalSec: DefaultPollIntervalSec,
		PollMaxAttempts: DefaultPollMaxAttempts,
		DownloadDir:     DefaultDownloadDir,
		LogLimit:        DefaultLogLimit,
	}
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// Load reads and validates the config at path, applying defaults for any
// field the file leaves unset. A missing file yields pure defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if errs := ValidateBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %s", path, errs[0])
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve finds the config to use: the explicit path when given, otherwise
// ./.sheetdeck.yaml when present, otherwise the user config directory,
// otherwise defaults.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if _, err := os.Stat(DefaultFilename); err == nil {
		return Load(DefaultFilename)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		userPath := filepath.Join(dir, "sheetdeck", "config.yaml")
		if _, err := os.Stat(userPath); err == nil {
			return Load(userPath)
		}
	}
	return New(), nil
}
