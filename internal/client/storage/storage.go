// Package storage implements the durable key-value stores backing the
// session token. Two backends exist, mirroring the platforms the app runs
// on: an encrypted sqlite store (the secure default) and a plain JSON
// file store. Which one backs a process is decided once at startup from
// configuration; callers only see the Store interface.
package storage

import (
	"context"
	"fmt"
)

// Backend names accepted in configuration.
const (
	BackendSecure = "secure"
	BackendFile   = "file"
)

// Store is a uniform durable key-value capability.
//
// Get returns (nil, nil) when the key is absent. Delete of an absent key
// is a no-op; logout idempotence depends on that.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open selects and initializes the backend for this process.
func Open(ctx context.Context, backend string, dataDir string) (Store, error) {
	switch backend {
	case BackendSecure:
		return OpenSecureStore(ctx, dataDir)
	case BackendFile:
		return NewFileStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
