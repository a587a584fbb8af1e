package config

import "flag"

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were explicitly set. Remaining arguments stay in fs.Args().
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasktrack", flag.ContinueOnError)
	}

	// Bound to copies so unset flags never clobber file or env values.
	var (
		namespace     = cfg.Namespace
		backend       = cfg.Backend
		dataDir       = cfg.DataDir
		dbPath        = cfg.DBPath
		hook          = cfg.HookCommand
		hookTimeout   = cfg.HookTimeoutSeconds
		logLevel      = cfg.LogLevel
		logFormat     = cfg.LogFormat
		logTimestamps = cfg.LogTimestamps
		logCaller     = cfg.LogCaller
	)

	fs.StringVar(&namespace, "namespace", namespace, "Storage key and channel name")
	fs.StringVar(&backend, "backend", backend, "Storage backend (memory, file, sqlite)")
	fs.StringVar(&dataDir, "data-dir", dataDir, "Data directory for the file backend and logs")
	fs.StringVar(&dbPath, "db", dbPath, "SQLite database path (default <data-dir>/tasktrack.db)")
	fs.StringVar(&hook, "hook", hook, "Command to run after each change (receives change set JSON on stdin)")
	fs.IntVar(&hookTimeout, "hook-timeout", hookTimeout, "Hook timeout in seconds (0 disables)")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", logFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", logTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", logCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"namespace":      "namespace",
		"backend":        "backend",
		"data-dir":       "data_dir",
		"db":             "db_path",
		"hook":           "hook_command",
		"hook-timeout":   "hook_timeout_seconds",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "namespace":
			cfg.Namespace = namespace
		case "backend":
			cfg.Backend = backend
		case "data-dir":
			cfg.DataDir = dataDir
		case "db":
			cfg.DBPath = dbPath
		case "hook":
			cfg.HookCommand = hook
		case "hook-timeout":
			cfg.HookTimeoutSeconds = hookTimeout
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		}
		if field, ok := flagToSource[f.Name]; ok && sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}
