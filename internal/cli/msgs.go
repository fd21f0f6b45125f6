package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep dotfiles in sync with a manifest"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgSyncShort       = "Place every manifest entry on this machine"
	MsgPlanShort       = "List the entries a sync would process"
	MsgBootstrapShort  = "Install packages and run setup scripts"
	MsgGenConfigShort  = "Print the default configuration"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgWatching      = "Watching %s for changes (Ctrl-C to stop)"
	MsgWatchStopped  = "Stopped watching."
	MsgResyncing     = "Change detected in %s, syncing again"
	MsgNoBootstrap   = "The manifest has no [bootstrap] section."
	MsgConfigWritten = "Wrote default configuration to %s\n"
	MsgNothingToSync = "The manifest has no entries."

	// Version output
	MsgVersionFormat = "dotsync version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrStrictFailed  = "%d of %d entries failed"
	MsgErrBootstrap     = "%d bootstrap steps failed"
	MsgErrWatch         = "failed to watch %s: %w"
	MsgErrConfigExists  = "configuration file %s already exists"
	MsgErrWriteConfig   = "failed to write configuration: %w"
	MsgErrNoCommand     = "no command specified"
	MsgErrInvalidFormat = "invalid --format: %w"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Configuration file (default $XDG_CONFIG_HOME/dotsync/config.toml)"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagManifest = "Manifest file (default from configuration, dotfiles.toml)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagStrict   = "Exit non-zero when any entry fails"
	MsgFlagWatch    = "Keep running and sync again when the manifest or sources change"
	MsgFlagForce    = "Run every run_once script again, even if it already ran"
	MsgFlagSudo     = "Use sudo for apt, pacman and dnf installs"
	MsgFlagWrite    = "Write to the user configuration file instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/bootstrap-long.txt
	msgBootstrapLongRaw string
	MsgBootstrapLong    = strings.TrimSpace(msgBootstrapLongRaw)

	//go:embed msgs/bootstrap-example.txt
	msgBootstrapExampleRaw string
	MsgBootstrapExample    = strings.TrimRight(msgBootstrapExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
