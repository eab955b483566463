package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all subsystem configuration
type Config struct {
	// Store layout
	ProfilesPath     string `env:"ESTE_PROFILES_PATH" envDefault:"users"`
	EmailsPath       string `env:"ESTE_EMAILS_PATH" envDefault:"emails"`
	PresencePath     string `env:"ESTE_PRESENCE_PATH" envDefault:"presence"`
	ConnectivityPath string `env:"ESTE_CONNECTIVITY_PATH" envDefault:".info/connected"`

	// Worker pool
	PersistWorkers   int `env:"ESTE_PERSIST_WORKERS" envDefault:"2"`
	PersistQueueSize int `env:"ESTE_PERSIST_QUEUE_SIZE" envDefault:"64"`

	// Events
	EventBuffer int `env:"ESTE_EVENT_BUFFER" envDefault:"128"`

	// Environment
	Environment string `env:"ESTE_ENV" envDefault:"development"`
	LogLevel    string `env:"ESTE_LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ProfilesPath == "" || c.EmailsPath == "" {
		return fmt.Errorf("profile and email paths are required")
	}
	if c.ProfilesPath == c.EmailsPath {
		return fmt.Errorf("profile and email paths must be distinct locations")
	}
	if c.PresencePath == "" {
		return fmt.Errorf("presence path is required")
	}
	if c.ConnectivityPath == "" {
		return fmt.Errorf("connectivity path is required")
	}
	if c.PersistWorkers < 1 {
		return fmt.Errorf("persist worker count must be at least 1")
	}
	if c.PersistQueueSize < 1 {
		return fmt.Errorf("persist queue size must be at least 1")
	}
	if c.EventBuffer < 1 {
		return fmt.Errorf("event buffer must be at least 1")
	}
	return nil
}
