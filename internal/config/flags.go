package config

import "flag"

// parseFlags defines and parses global CLI flags. Defaults come from cfg, so
// flags only override what the user actually passes.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("listkeep", flag.ContinueOnError)
	}

	// Storage
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the snapshot store")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Snapshot store backend (file|sqlite|memory)")
	fs.StringVar(&cfg.SnapshotKey, "key", cfg.SnapshotKey, "Snapshot key (one key per list)")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "JSON Schema for snapshot validation (default: built-in)")

	// Terminal UI
	fs.BoolVar(&cfg.Mouse, "mouse", cfg.Mouse, "Enable mouse clicks and drag reordering")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Reload when the snapshot changes on disk")
	fs.BoolVar(&cfg.ConfirmClear, "confirm-clear", cfg.ConfirmClear, "Ask before clearing the list")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log lines")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log lines")

	return fs.Parse(args)
}
