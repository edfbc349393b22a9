// Package config loads herotail's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/herotail/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing, empty or zero, use defaults
//
// A file that exists but cannot be parsed is an error.
//
// # TOML Format
//
//	buffer_capacity = 10000
//	heroku_bin = "/opt/homebrew/bin/heroku"
//	export_dir = "~/Downloads"
//	export_compress = false
//	log_file = "~/.local/state/herotail/herotail.log"
//	log_level = "info"
//	tick_interval_ms = 100
//	monitor_interval_ms = 2000
//
// Every field is optional. Paths get tilde expansion and are made absolute.
// Command-line flags override file values; that merge happens in the caller.
package config
