package config

import "time"

// Config is the merged dotsync configuration
type Config struct {
	// Manifest is the manifest path used when none is given on the command line
	Manifest  string          `koanf:"manifest"`
	Sync      SyncConfig      `koanf:"sync"`
	Bootstrap BootstrapConfig `koanf:"bootstrap"`
}

// SyncConfig holds settings for the sync command
type SyncConfig struct {
	DryRun bool `koanf:"dry_run"`
	Strict bool `koanf:"strict"`
}

// BootstrapConfig holds settings for the bootstrap command
type BootstrapConfig struct {
	UseSudo  bool          `koanf:"use_sudo"`
	StateDir string        `koanf:"state_dir"`
	Timeout  time.Duration `koanf:"timeout"`
}
