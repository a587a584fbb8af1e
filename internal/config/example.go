package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasktrack configuration file
# Values can be overridden by TASKTRACK_* environment variables or CLI flags

# Storage key; tasks in different namespaces never mix
namespace = "todo"

# Storage backend: memory, file, or sqlite
backend = "file"

# Data directory (relative to the current directory, supports ~ expansion)
data_dir = ".tasktrack"

# SQLite database path (defaults to <data_dir>/tasktrack.db)
# db_path = "~/.tasktrack/tasktrack.db"

# Command run after each change; receives the change set as JSON on stdin
# hook_command = "/path/to/hook.sh"

# Hook timeout in seconds (0 disables)
hook_timeout_seconds = 10

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
