// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/lockfetch/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/lockfetch/config.cue on macOS, %APPDATA%\lockfetch\config.cue
// on Windows), falling back to ./config.cue. It covers the prefetch command and its retry
// policy, batch conversion settings, and UI preferences.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
