// Package config loads vfsshell configuration from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. VFS_CSV.
const Prefix = "VFS"

// Config holds all application configuration.
type Config struct {
	// CSV is the snapshot loaded when --vfs-csv is not given.
	CSV string `envconfig:"CSV"`

	// Shell
	Prompt    string `envconfig:"PROMPT" default:"VFS"`
	ExpandEnv bool   `envconfig:"EXPAND_ENV" default:"false"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Prompt:   "VFS",
		LogLevel: "info",
	}
}
