// Package config handles loading and parsing the application's configuration.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// DefaultPath is where the entry point looks when no --config is given.
const DefaultPath = "shelf.toml"

// Config holds all configuration for the application.
type Config struct {
	LogLevel    string `toml:"log_level"`    // trace, debug, info, warn, error, off
	LogJSON     bool   `toml:"log_json"`
	JournalPath string `toml:"journal_path"` // empty disables the audit journal
	Quiet       bool   `toml:"quiet"`        // suppress prompts for scripted input
}

// New returns a new Config with default values.
func New() *Config {
	return &Config{
		LogLevel:    "warn",
		LogJSON:     false,
		JournalPath: "",
		Quiet:       false,
	}
}

// Load reads a configuration file from the given path and populates the Config struct.
func (c *Config) Load(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return errors.Wrapf(err, "load config %s", path)
	}
	return c.Validate()
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return errors.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}
