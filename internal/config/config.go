package config

import "time"

// Config holds runtime settings for the HealthMate CLI.
//
// Fields:
//   - BaseURL: root URL of the backend (scheme://host[:port]), no trailing slash.
//   - RequestTimeout: per-request deadline applied by the HTTP client.
//   - HealthCheckInterval: how often the client probes backend reachability.
type Config struct {
	BaseURL             string
	RequestTimeout      time.Duration
	HealthCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:3000"
	c.RequestTimeout = 30 * time.Second
	c.HealthCheckInterval = 30 * time.Second
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
