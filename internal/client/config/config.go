package config

import "time"

// Config holds runtime settings for the account CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the account server.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - SessionFile: SQLite file caching the logged-in session.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	SessionFile         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.OnlineCheckInterval = 3 * time.Second
	c.SessionFile = "session.db"
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
