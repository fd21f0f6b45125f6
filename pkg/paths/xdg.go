package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "dotsync"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// EnvConfigDir overrides the XDG config directory for dotsync
	EnvConfigDir = "DOTSYNC_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for dotsync
	EnvStateDir = "DOTSYNC_STATE_DIR"
)

// ConfigDir returns the directory holding dotsync's user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the path of the user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the directory where dotsync keeps run-once sentinels
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	xdg.Reload()
	return filepath.Join(xdg.StateHome, AppDirName)
}
