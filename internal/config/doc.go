// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/modload/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/modload/config.cue on macOS, %APPDATA%\modload\config.cue
// on Windows), falling back to ./config.cue. MODLOAD_* environment variables override the
// file; MODLOAD_LOADER_TIMEOUT sets loader.timeout.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before they
// reach Viper.
package config
