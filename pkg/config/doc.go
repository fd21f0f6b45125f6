// Package config loads dotsync's settings.
//
// Settings are layered with koanf, later sources winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/dotsync/config.toml
//  3. DOTSYNC_* environment variables
//
// Command line flags are applied on top by the caller.
package config
