package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "data", "cxpress")

	got, err := EnsureDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	fi, err := os.Stat(target)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureDir(tmp)
	require.NoError(t, err)
	second, err := EnsureDir(tmp)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsOnFileCollision(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := EnsureDir(file)
	require.Error(t, err)
}

func TestDefaultDataDir_NotEmpty(t *testing.T) {
	require.NotEmpty(t, DefaultDataDir())
}
