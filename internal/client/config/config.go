// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the SevenTour CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API (including /api/v1).
//   - DatabasePath: path of the local SQLite database holding credentials.
//   - RequestTimeout: transport-level timeout for backend calls. This is the
//     only timeout in the client; callers never enforce their own.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000/api/v1"
	c.DatabasePath = "seventour.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
