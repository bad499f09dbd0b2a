// Package datadir resolves the cache directory padatious persists trained
// artifacts under (spec.md §6: "one subdirectory per language"). This is
// collaborator-layer code — the core engine packages never resolve paths
// themselves, they are simply handed a directory to read/write.
package datadir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default cache directory name under $HOME.
	DefaultDirName = ".padatious"

	// EnvVar is the environment variable that overrides the cache directory.
	EnvVar = "PADATIOUS_DATA_DIR"
)

// DataDir provides a single source of truth for the cache root and its
// per-language subdirectories.
type DataDir struct {
	root string
}

// New returns a DataDir rooted at the resolved cache directory. It does NOT
// create the directory tree; call EnsureLanguage for that.
//
// Resolution priority:
//  1. PADATIOUS_DATA_DIR environment variable
//  2. configValue argument (from the CLI config's cache_dir field)
//  3. ~/.padatious/
func New(configValue string) (*DataDir, error) {
	root, err := resolveRoot(configValue)
	if err != nil {
		return nil, err
	}
	return &DataDir{root: root}, nil
}

// Root returns the base cache directory path.
func (d *DataDir) Root() string { return d.root }

// LanguageDir returns {root}/{lang}/, the directory artifacts for a given
// language are persisted under.
func (d *DataDir) LanguageDir(lang string) string {
	return filepath.Join(d.root, lang)
}

// EnsureLanguage creates {root}/{lang}/ with 0700 permissions.
func (d *DataDir) EnsureLanguage(lang string) (string, error) {
	dir := d.LanguageDir(lang)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}

// resolveRoot determines the root path without creating it.
func resolveRoot(configValue string) (string, error) {
	dir := os.Getenv(EnvVar)
	if dir == "" {
		dir = configValue
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultDirName)
	}
	return dir, nil
}
