// Package bootstrap prepares a fresh machine: it installs packages through
// the system package managers and runs setup scripts once.
//
// Bootstrap is independent of the sync engine and only runs when asked for.
// Like the sync engine it is best effort: a failed package or script is
// logged and recorded, and the next one still runs.
//
// Run-once scripts leave a sentinel under the state directory holding the
// script's checksum. A script runs again only when its content changes or
// when Force is set.
package bootstrap
