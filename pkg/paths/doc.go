// Package paths provides path handling for dotsync.
//
// It handles:
//
//   - Shell-style expansion of manifest target paths (~, $VAR, ${VAR},
//     ${VAR:-default}) against an injected environment
//   - XDG directory locations for dotsync's own config and state
//
// # Expansion
//
//	r := paths.NewResolver(paths.Env{Home: "/home/u", Lookup: os.LookupEnv})
//	target, err := r.Resolve("~/config/app.conf")
//	// target == "/home/u/config/app.conf"
//
// Expansion never touches the filesystem. Its only inputs are the string, the
// Env and the resolver's working directory, which is used to make relative
// results absolute.
//
// # Environment Variables
//
//   - DOTSYNC_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/dotsync)
//   - DOTSYNC_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/dotsync)
package paths
