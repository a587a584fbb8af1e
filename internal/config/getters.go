package config

import (
	"fmt"
	"time"

	"github.com/nibzard/tasktrack/internal/datadir"
)

// StorageLocation returns the location argument for kv.Open: the data
// directory for the file backend, the database path for sqlite.
func (c *Config) StorageLocation() string {
	if c.Backend == "sqlite" {
		return c.DBPath
	}
	return c.DataDir
}

// HookTimeout returns the hook timeout. Zero means no timeout.
func (c *Config) HookTimeout() time.Duration {
	if c.HookTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.HookTimeoutSeconds) * time.Second
}

// LogFilePath returns where the TUI writes its logs.
func (c *Config) LogFilePath() string {
	return datadir.LogPath(c.DataDir)
}

// Values returns the printable value of every source-tracked field.
func (c *Config) Values() map[string]string {
	return map[string]string{
		"namespace":            c.Namespace,
		"backend":              c.Backend,
		"data_dir":             c.DataDir,
		"db_path":              c.DBPath,
		"hook_command":         c.HookCommand,
		"hook_timeout_seconds": fmt.Sprint(c.HookTimeoutSeconds),
		"log_level":            c.LogLevel,
		"log_format":           c.LogFormat,
		"log_timestamps":       fmt.Sprint(c.LogTimestamps),
		"log_caller":           fmt.Sprint(c.LogCaller),
	}
}

// Fields returns the source-tracked field names in display order.
func Fields() []string {
	return configFields()
}
