// Package config holds the runtime settings of the registration bot.
package config

import "time"

// Config holds runtime settings for the bot CLI.
//
// EndpointURL is the registration endpoint; when it is empty (or DryRun is
// set) submissions are simulated instead of sent. RequestDelay is the pause
// between consecutive submissions, RequestTimeout caps a single HTTP call.
type Config struct {
	EndpointURL    string
	DatabasePath   string
	TargetCount    int
	RequestDelay   time.Duration
	RequestTimeout time.Duration
	ProfilePath    string
	TraceFile      string
	DryRun         bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointURL = ""
	c.DatabasePath = "accounts.db"
	c.TargetCount = 10
	c.RequestDelay = 2 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.ProfilePath = ""
	c.TraceFile = ""
	c.DryRun = false
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
