package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gameguesser/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     base URL of the catalog API
//	-d string     path to the SQLite database file
//	-i int        online check interval in seconds
//	-s duration   background sync interval (0 disables)
//	-r duration   per-request timeout
//	-l string     log level
//	-t string     timezone for streak day boundaries
//
// Note: The function filters args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-i", "-s", "-r", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the catalog API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the database file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.DurationVar(&cfg.SyncInterval, "s", cfg.SyncInterval, "background sync interval, 0 disables")
	fs.DurationVar(&cfg.RequestTimeout, "r", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Timezone, "t", cfg.Timezone, "timezone for streak day boundaries")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
