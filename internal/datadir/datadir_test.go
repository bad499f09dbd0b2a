package datadir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvVarWins(t *testing.T) {
	dir := t.TempDir()
	envDir := filepath.Join(dir, "env-root")
	t.Setenv(EnvVar, envDir)

	dd, err := New("ignored-config-value")
	require.NoError(t, err)
	assert.Equal(t, envDir, dd.Root())
}

func TestNew_ConfigFallback(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "from-config")

	dd, err := New(cfgDir)
	require.NoError(t, err)
	assert.Equal(t, cfgDir, dd.Root())
}

func TestNew_DefaultHome(t *testing.T) {
	t.Setenv(EnvVar, "")
	home, _ := os.UserHomeDir()

	dd, err := New("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDirName), dd.Root())
}

func TestDataDir_LanguageDir(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvVar, root)

	dd, err := New("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "en"), dd.LanguageDir("en"))
}

func TestDataDir_EnsureLanguage(t *testing.T) {
	root := filepath.Join(t.TempDir(), "fresh")
	t.Setenv(EnvVar, root)

	dd, err := New("")
	require.NoError(t, err)

	_, err = os.Stat(dd.LanguageDir("en"))
	assert.True(t, os.IsNotExist(err))

	dir, err := dd.EnsureLanguage("en")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestDataDir_EnsureLanguage_Idempotent(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvVar, root)

	dd, err := New("")
	require.NoError(t, err)

	dir, err := dd.EnsureLanguage("en")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.hash"), []byte("data"), 0600))

	_, err = dd.EnsureLanguage("en")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "greet.hash"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}
