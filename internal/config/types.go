package config

import "github.com/nibzard/tasktrack/internal/datadir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultNamespace          = "todo"
	DefaultBackend            = "file"
	DefaultDataDir            = datadir.Dir
	DefaultHookTimeoutSeconds = 10
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
)

// Config holds the full configuration for tasktrack.
type Config struct {
	// Storage
	Namespace string `toml:"namespace" validate:"required"`
	Backend   string `toml:"backend" validate:"required,oneof=memory file sqlite"`
	DataDir   string `toml:"data_dir" validate:"required"`
	DBPath    string `toml:"db_path"` // Defaults to <data_dir>/tasktrack.db

	// Hooks
	HookCommand        string `toml:"hook_command"`
	HookTimeoutSeconds int    `toml:"hook_timeout_seconds" validate:"min=0"`

	// Logging configuration
	LogLevel      string `toml:"log_level" validate:"oneof=debug info warn error fatal"`
	LogFormat     string `toml:"log_format" validate:"oneof=text json logfmt"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
