package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gameguesser/internal/flagx"
	"github.com/dmitrijs2005/gameguesser/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "5s" or as integer nanoseconds. Absent keys leave the
// corresponding Config field unchanged.
type JsonConfig struct {
	ServerBaseURL       string          `json:"server_url"`
	DatabasePath        string          `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	SyncInterval        *timex.Duration `json:"sync_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	LogLevel            string          `json:"log_level"`
	Timezone            *string         `json:"timezone"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing is loaded. Read and unmarshal
// errors panic.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SyncInterval != nil {
		cfg.SyncInterval = jc.SyncInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.Timezone != nil {
		cfg.Timezone = *jc.Timezone
	}
}
