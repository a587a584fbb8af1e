// Package datadir provides constants and helpers for the .tasktrack directory.
package datadir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the tasktrack state directory.
	Dir = ".tasktrack"

	// DBFile is the SQLite database file name (inside .tasktrack).
	DBFile = "tasktrack.db"

	// LogFile receives logs while the TUI owns the terminal.
	LogFile = "tasktrack.log"

	// ConfigFile is the default config file name.
	ConfigFile = "tasktrack.toml"
)

// DirPath returns the full path to the .tasktrack directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// DBPath returns the database path inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// LogPath returns the TUI log file path inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, LogFile)
}

// Ensure creates dataDir if it does not exist.
func Ensure(dataDir string) error {
	return os.MkdirAll(dataDir, 0o755)
}
