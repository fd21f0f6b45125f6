package filesystem

import (
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/spf13/afero"
)

// NewOS returns the real filesystem. OsFs implements afero.Linker and
// afero.Lstater, so symlinks and dangling links work as with package os.
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}
