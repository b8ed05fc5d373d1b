package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/curriculoxpress/cxpress/internal/flagx"
)

// Duration unmarshals from either a string ("10s") or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case float64:
		*d = Duration(time.Duration(val))
		return nil
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", data)
	}
}

// jsonConfig is the DTO for the config file; zero values mean "not set"
// and leave the runtime Config untouched.
type jsonConfig struct {
	BaseURL        string   `json:"base_url"`
	RequestTimeout Duration `json:"request_timeout"`
	Storage        string   `json:"storage"`
	DataDir        string   `json:"data_dir"`
	LogLevel       string   `json:"log_level"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// No flag, no file read. Read or parse errors panic; the entrypoint has
// nothing sensible to continue with.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout)
	}
	if jc.Storage != "" {
		cfg.Storage = jc.Storage
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
