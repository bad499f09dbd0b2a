package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 100, cfg.CacheSize)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 2, cfg.TopKDomains)
}

func TestLoadCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Language, cfg.Language)

	// loading again should read back what was saved
	cfg2, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.CacheSize, cfg2.CacheSize)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.json")

	cfg := Default()
	cfg.Language = "fr"
	cfg.Port = 9090
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", loaded.Language)
	assert.Equal(t, 9090, loaded.Port)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := Default()
	cfg.Port = -1
	assert.Error(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeSizes(t *testing.T) {
	cfg := Default()
	cfg.CacheSize = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TopKDomains = -1
	assert.Error(t, cfg.Validate())
}
