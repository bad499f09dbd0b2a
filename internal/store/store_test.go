package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_WriteReadRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Write("greet", ".intent.ids", []byte("hello")))
	data, err := s.Read("greet", ".intent.ids")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFileStore_ReadMissingReturnsErrNotFound(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Read("missing", ".intent.ids")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_ExistsAndRemove(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	assert.False(t, s.Exists("greet", ".hash"))
	require.NoError(t, s.Write("greet", ".hash", []byte{1, 2, 3, 4}))
	assert.True(t, s.Exists("greet", ".hash"))

	require.NoError(t, s.Remove("greet", ".hash"))
	assert.False(t, s.Exists("greet", ".hash"))
}

func TestFileStore_RemoveMissingIsNoop(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Remove("nope", ".hash"))
}

func TestSQLiteStore_WriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Write("weather", ".intent.net", []byte{9, 8, 7}))
	data, err := s.Read("weather", ".intent.net")
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, data)
}

func TestSQLiteStore_OverwriteUpdatesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Write("weather", ".hash", []byte{1}))
	require.NoError(t, s.Write("weather", ".hash", []byte{2}))

	data, err := s.Read("weather", ".hash")
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, data)
}

func TestSQLiteStore_ReadMissingReturnsErrNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Read("missing", ".hash")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_ExistsAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Write("weather", ".hash", []byte{1}))
	assert.True(t, s.Exists("weather", ".hash"))

	require.NoError(t, s.Remove("weather", ".hash"))
	assert.False(t, s.Exists("weather", ".hash"))
}
