// Package filex holds filesystem helpers for locating and creating the
// client's data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if it does not exist and returns
// the absolute path. Token stores and the machine secret live under it.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DefaultDataDir resolves the per-user data directory for the client,
// e.g. ~/.config/cxpress on Linux. Falls back to a dot directory in the
// working directory when the user config dir cannot be determined.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".cxpress"
	}
	return filepath.Join(base, "cxpress")
}
