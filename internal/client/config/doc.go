// Package config loads runtime configuration for the cxpress CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the Currículo Xpress API
//	-t int      request timeout (seconds)
//	-s string   storage backend: "secure" or "file"
//	-d string   data directory for the token store
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.curriculoxpress.app/api",
//	  "request_timeout": "10s",
//	  "storage": "secure",
//	  "data_dir": "/home/me/.config/cxpress",
//	  "log_level": "info"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags.
package config
