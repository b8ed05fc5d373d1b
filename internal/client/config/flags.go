package config

import (
	"flag"
	"os"
	"time"

	"github.com/curriculoxpress/cxpress/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags. Arguments are
// filtered to only the flags handled here, so the REPL's own arguments
// never interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-t", "-s", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "base URL of the API")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (seconds)")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend: secure or file")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
