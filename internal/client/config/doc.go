// Package config loads runtime configuration for the gameguesser CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. A dotenv file (-e/-env, or ./.env when present) and GG_* environment
//     variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the catalog API
//	-d string     SQLite database file
//	-i int        online status check interval (seconds)
//	-s duration   background sync interval, 0 disables
//	-r duration   per-request timeout
//	-l string     log level (debug, info, warn, error)
//	-t string     IANA timezone for streak day boundaries
//
// # Environment
//
//	GG_SERVER_URL, GG_DATABASE_PATH, GG_ONLINE_CHECK_INTERVAL,
//	GG_SYNC_INTERVAL, GG_REQUEST_TIMEOUT, GG_LOG_LEVEL, GG_TIMEZONE
//
// Durations use Go syntax ("5s", "30m").
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://gameguesser-api.onrender.com/",
//	  "database_path": "gameguesser.db",
//	  "online_check_interval": "5s",
//	  "sync_interval": "30m",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "timezone": "Europe/Riga"
//	}
package config
