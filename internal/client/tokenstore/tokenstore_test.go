package tokenstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "nested", "token"))
	require.NoError(t, err)

	got, err := s.Get()
	require.NoError(t, err)
	assert.Empty(t, got, "missing file reads as no token")

	require.NoError(t, s.Set("abc.def.ghi"))
	got, err = s.Get()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	require.NoError(t, s.Set("second"))
	got, err = s.Get()
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	require.NoError(t, s.Remove())
	require.NoError(t, s.Remove())
	got, err = s.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	s, err := New(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	require.NoError(t, s.Set("tok"))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNew_DefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}

	s, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "token", filepath.Base(s.Path()))
	assert.Equal(t, "bioqr", filepath.Base(filepath.Dir(s.Path())))
}
