// Package config loads editor settings.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file (Load, Parse)
//  3. PANEEDIT_* environment variables (Config.ApplyEnv)
//
// A file looks like:
//
//	[history]
//	limit = 1000
//
//	[search]
//	ignore_case = true
//
//	[view]
//	scroll_margin = 3
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[script]
//	timeout = "2s"
package config
