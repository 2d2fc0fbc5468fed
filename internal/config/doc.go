// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.listkeep/listkeep.toml or OS-specific config directory)
// 3. Project config file (listkeep.toml or .listkeep.toml in the working directory)
// 4. Environment variables (LISTKEEP_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.listkeep/listkeep.toml (preferred)
// - Windows: %APPDATA%\listkeep\listkeep.toml
// - macOS: ~/Library/Application Support/listkeep/listkeep.toml
// - Linux/BSD: $XDG_CONFIG_HOME/listkeep/listkeep.toml or ~/.config/listkeep/listkeep.toml
package config
