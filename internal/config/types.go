package config

// Default values.
const (
	DefaultDataDir     = "~/.listkeep"
	DefaultLogDir      = "~/.listkeep/logs"
	DefaultStore       = "file"
	DefaultSnapshotKey = "todos"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config holds the full configuration for listkeep.
type Config struct {
	// Storage
	DataDir     string `toml:"data_dir"`
	Store       string `toml:"store"` // file, sqlite or memory
	SnapshotKey string `toml:"snapshot_key"`
	SchemaFile  string `toml:"schema_file"` // empty uses the built-in schema

	// Terminal UI
	Mouse        bool `toml:"mouse"`
	Watch        bool `toml:"watch"`
	ConfirmClear bool `toml:"confirm_clear"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
