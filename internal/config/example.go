package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# listkeep configuration file
# Values can be overridden by LISTKEEP_* environment variables or CLI flags.

# Where the snapshot store lives (supports ~ expansion)
data_dir = "~/.listkeep"

# Snapshot store backend: file, sqlite or memory
store = "file"

# Snapshot key; use different keys to keep separate lists
snapshot_key = "todos"

# JSON Schema used by "listkeep doctor" (empty = built-in schema)
# schema_file = "snapshot.schema.json"

# Mouse clicks and drag-to-reorder in the terminal UI
mouse = true

# Reload the list when another process changes the snapshot (file store only)
watch = true

# Ask before "clear all"
confirm_clear = true

# Logging
log_dir = "~/.listkeep/logs"
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = true
log_caller = false
`
}
