package storage

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/curriculoxpress/cxpress/internal/client/storage/migrations"
	"github.com/curriculoxpress/cxpress/internal/common"
	"github.com/curriculoxpress/cxpress/internal/cryptox"
	"github.com/curriculoxpress/cxpress/internal/dbx"
	"github.com/curriculoxpress/cxpress/internal/filex"
)

const (
	dbFileName     = "cxpress.db"
	secretFileName = "machine.secret"
	saltFileName   = "machine.salt"
)

// SecureStore keeps values in a sqlite metadata table, sealed with a key
// derived from a per-machine secret created on first use. It stands in
// for the encrypted secure storage of the mobile platforms.
type SecureStore struct {
	db  *sql.DB
	key []byte
}

// OpenSecureStore opens (creating if needed) the sqlite database under
// dataDir, runs migrations, and derives the sealing key.
func OpenSecureStore(ctx context.Context, dataDir string) (*SecureStore, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, err
	}

	key, err := loadOrCreateKey(dir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SecureStore{db: db, key: key}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// loadOrCreateKey reads the machine secret and salt files, creating both
// with fresh random content on first run, and derives the sealing key.
func loadOrCreateKey(dir string) ([]byte, error) {
	secret, err := loadOrCreateRandFile(filepath.Join(dir, secretFileName), 32)
	if err != nil {
		return nil, err
	}
	salt, err := loadOrCreateRandFile(filepath.Join(dir, saltFileName), 16)
	if err != nil {
		return nil, err
	}
	return cryptox.DeriveKey(secret, salt), nil
}

func loadOrCreateRandFile(path string, size int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		b, err := hex.DecodeString(string(data))
		if err != nil {
			return nil, fmt.Errorf("corrupt %s: %w", path, err)
		}
		return b, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	b := common.GenerateRandByteArray(size)
	if err := os.WriteFile(path, []byte(hex.EncodeToString(b)), 0o600); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *SecureStore) Get(ctx context.Context, key string) ([]byte, error) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata[%s]: %w", key, err)
	}

	value, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return nil, fmt.Errorf("unseal metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SecureStore) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, s.key)
	if err != nil {
		return fmt.Errorf("seal metadata[%s]: %w", key, err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, sealed)
		if err != nil {
			return fmt.Errorf("set metadata[%s]: %w", key, err)
		}
		return nil
	})
}

func (s *SecureStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *SecureStore) Close() error {
	return s.db.Close()
}
