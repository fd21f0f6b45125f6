package types

import (
	"io/fs"
)

// FS is the set of filesystem operations the sync engine performs.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Lstat does not follow a final symlink, so dangling links are still seen.
	Lstat(name string) (fs.FileInfo, error)

	Rename(oldpath, newpath string) error
	Remove(name string) error
}
