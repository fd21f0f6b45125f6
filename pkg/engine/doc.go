// Package engine places manifest entries on the filesystem.
//
// For every entry, in order, the engine:
//
//  1. moves an existing target (file, directory or symlink, dangling or not)
//     aside to a timestamped backup path
//  2. creates the target's parent directories
//  3. creates a symlink to the source, copies the source's bytes, or renders
//     the source as a template, depending on the entry's kind
//
// Entries are independent. A failure in any step is logged and recorded in
// the Report, that entry is left alone from then on, and the engine moves to
// the next entry. Nothing is retried and nothing is rolled back.
//
// # Backup naming
//
// The timestamp goes between the stem and the extension of the target's
// name, so the extension survives:
//
//	app.conf  ->  app.backup.20260102150405.conf
//	.vimrc    ->  .vimrc.backup.20260102150405
//	init.lua  ->  init.backup.20260102150405.lua
//
// A dotfile name with no further dot, like .vimrc, has no extension. The
// timestamp is UTC. When that path is already taken, -1, -2 and so on are
// appended to the timestamp until a free name is found, so an earlier backup
// is never overwritten.
package engine
