// Package manifest loads the dotfiles manifest and turns it into sync entries.
//
// A manifest has up to three mapping sections, each from target path to
// source path, plus an optional bootstrap section:
//
//	[symlink]
//	"~/.vimrc" = "files/vimrc"
//
//	[copy]
//	"$XDG_CONFIG_HOME/git/config" = "files/gitconfig"
//
//	[template]
//	"~/.profile" = "templates/profile"
//
//	[bootstrap]
//	packages = [{ manager = "brew", name = "ripgrep" }]
//	run_once = [{ script = "scripts/setup.sh", description = "Configure macOS defaults" }]
//
// Targets are expanded with a paths.Resolver while parsing; sources are kept
// verbatim. Parsing is all or nothing: the first target that fails to expand
// aborts it and no entries are returned.
package manifest
