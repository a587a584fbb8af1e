package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/tasktrack/internal/datadir"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{datadir.ConfigFile, "." + datadir.ConfigFile}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.tasktrack/tasktrack.toml first, then falls back to OS-specific
// config directories.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		p := filepath.Join(home, datadir.Dir, datadir.ConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		p := filepath.Join(cfgDir, "tasktrack", datadir.ConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Namespace = DefaultNamespace
	cfg.Backend = DefaultBackend
	cfg.DataDir = DefaultDataDir
	cfg.DBPath = ""
	cfg.HookCommand = ""
	cfg.HookTimeoutSeconds = DefaultHookTimeoutSeconds
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// GetConfigFile returns the path of the file that supplied at least one
// value, preferring the project file. It is empty when only defaults, env
// and flags were used.
func (cws *ConfigWithSources) GetConfigFile() string {
	used := make(map[ConfigSource]bool, len(cws.Sources))
	for _, source := range cws.Sources {
		used[source] = true
	}
	if used[SourceProjFile] {
		return findProjectConfigFile()
	}
	if used[SourceUserFile] {
		return findUserConfigFile()
	}
	return ""
}
