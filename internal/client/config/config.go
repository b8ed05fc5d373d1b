package config

import (
	"time"

	"github.com/curriculoxpress/cxpress/internal/client/storage"
	"github.com/curriculoxpress/cxpress/internal/filex"
)

// Config holds runtime settings for the cxpress CLI.
type Config struct {
	// BaseURL is the root of the REST API, without a trailing slash.
	BaseURL string
	// RequestTimeout bounds every HTTP call.
	RequestTimeout time.Duration
	// Storage selects the token store backend: storage.BackendSecure or
	// storage.BackendFile. Chosen once at startup; callers of the store
	// never see the difference.
	Storage string
	// DataDir is where the token store and machine secret live.
	DataDir string
	// LogLevel is a zap level string.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://curriculo-express-api-10112025.vercel.app/api"
	c.RequestTimeout = 10 * time.Second
	c.Storage = storage.BackendSecure
	c.DataDir = filex.DefaultDataDir()
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags. Later sources take
// precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
