// Package pathutil provides centralized path management for roman-calc data files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver manages paths for the history database and the result cache.
type PathResolver struct {
	dataRoot     string
	databasePath string
	cachePath    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataRoot is the directory holding all roman-calc state (e.g., ~/.roman)
	DataRoot string
	// DatabasePath is the path to the SQLite database file for calculation history
	DatabasePath string
	// CachePath is the path to the bbolt file memoizing results
	CachePath string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataRoot}/history.db
// If CachePath is empty, it defaults to {DataRoot}/cache.db
func New(config Config) *PathResolver {
	root := config.DataRoot
	if root == "" {
		root = "."
	}

	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(root, "history.db")
	}

	cachePath := config.CachePath
	if cachePath == "" {
		cachePath = filepath.Join(root, "cache.db")
	}

	return &PathResolver{
		dataRoot:     root,
		databasePath: dbPath,
		cachePath:    cachePath,
	}
}

// GetDataRoot returns the data root directory.
func (p *PathResolver) GetDataRoot() string {
	return p.dataRoot
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetCachePath returns the cache file path.
func (p *PathResolver) GetCachePath() string {
	return p.cachePath
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
