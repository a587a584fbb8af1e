package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TASKTRACK_* environment variables and
// records each applied value in sources.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKTRACK_NAMESPACE"); v != "" {
		cfg.Namespace = v
		setEnv("namespace")
	}
	if v := os.Getenv("TASKTRACK_BACKEND"); v != "" {
		cfg.Backend = v
		setEnv("backend")
	}
	if v := os.Getenv("TASKTRACK_DATA_DIR"); v != "" {
		cfg.DataDir = v
		setEnv("data_dir")
	}
	if v := os.Getenv("TASKTRACK_DB_PATH"); v != "" {
		cfg.DBPath = v
		setEnv("db_path")
	}
	if v := os.Getenv("TASKTRACK_HOOK"); v != "" {
		cfg.HookCommand = v
		setEnv("hook_command")
	}
	if v := os.Getenv("TASKTRACK_HOOK_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.HookTimeoutSeconds = i
			setEnv("hook_timeout_seconds")
		}
	}

	// Logging configuration
	if v := os.Getenv("TASKTRACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TASKTRACK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TASKTRACK_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TASKTRACK_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
