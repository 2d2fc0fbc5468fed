package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	strs := []struct {
		name   string
		target *string
	}{
		{"LISTKEEP_DATA_DIR", &cfg.DataDir},
		{"LISTKEEP_STORE", &cfg.Store},
		{"LISTKEEP_KEY", &cfg.SnapshotKey},
		{"LISTKEEP_SCHEMA", &cfg.SchemaFile},
		{"LISTKEEP_LOG_DIR", &cfg.LogDir},
		{"LISTKEEP_LOG_LEVEL", &cfg.LogLevel},
		{"LISTKEEP_LOG_FORMAT", &cfg.LogFormat},
	}
	for _, s := range strs {
		if v := os.Getenv(s.name); v != "" {
			*s.target = v
		}
	}

	bools := []struct {
		name   string
		target *bool
	}{
		{"LISTKEEP_MOUSE", &cfg.Mouse},
		{"LISTKEEP_WATCH", &cfg.Watch},
		{"LISTKEEP_CONFIRM_CLEAR", &cfg.ConfirmClear},
		{"LISTKEEP_LOG_TIMESTAMPS", &cfg.LogTimestamps},
		{"LISTKEEP_LOG_CALLER", &cfg.LogCaller},
	}
	for _, b := range bools {
		if v := os.Getenv(b.name); v != "" {
			*b.target = boolFromString(v)
		}
	}
}

// boolFromString parses the usual spellings of true; anything else is false.
func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "y":
		return true
	default:
		return false
	}
}
