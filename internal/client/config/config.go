package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the gameguesser CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the remote catalog API.
//   - DatabasePath: SQLite file holding the cache, users and preferences.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - SyncInterval: how often the catalog is refreshed in the background; 0 disables it.
//   - RequestTimeout: upper bound for a single API request.
//   - LogLevel: debug, info, warn or error.
//   - Timezone: IANA zone used for calendar-day streak comparisons; empty means local.
type Config struct {
	ServerBaseURL       string        `env:"GG_SERVER_URL"`
	DatabasePath        string        `env:"GG_DATABASE_PATH"`
	OnlineCheckInterval time.Duration `env:"GG_ONLINE_CHECK_INTERVAL"`
	SyncInterval        time.Duration `env:"GG_SYNC_INTERVAL"`
	RequestTimeout      time.Duration `env:"GG_REQUEST_TIMEOUT"`
	LogLevel            string        `env:"GG_LOG_LEVEL"`
	Timezone            string        `env:"GG_TIMEZONE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://gameguesser-api.onrender.com/"
	c.DatabasePath = "gameguesser.db"
	c.OnlineCheckInterval = 5 * time.Second
	c.SyncInterval = 30 * time.Minute
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.Timezone = ""
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
