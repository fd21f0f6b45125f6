// Package filesystem provides implementations of types.FS.
//
// Both constructors go through one afero adapter. NewOS wraps afero's OsFs
// and is what the CLI uses. NewAferoFS wraps any afero.Fs, typically a
// MemMapFs for fast isolated tests. Symlinks fail with afero.ErrNoSymlink
// unless the wrapped afero.Fs implements afero.Linker.
package filesystem
