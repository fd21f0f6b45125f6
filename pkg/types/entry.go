package types

import "fmt"

// Kind is the placement strategy of an entry. The set is closed: the sync
// engine switches over every value and treats anything else as an internal
// error.
type Kind int

const (
	KindSymlink Kind = iota
	KindCopy
	KindTemplate
)

// Kinds lists every Kind in manifest processing order.
var Kinds = []Kind{KindSymlink, KindCopy, KindTemplate}

// String returns the manifest section name for the kind
func (k Kind) String() string {
	switch k {
	case KindSymlink:
		return "symlink"
	case KindCopy:
		return "copy"
	case KindTemplate:
		return "template"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry maps one source file to one target location.
//
// Target is always absolute and fully expanded; Source is kept exactly as
// written in the manifest.
type Entry struct {
	Source string
	Target string
	Kind   Kind
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s -> %s", e.Kind, e.Target, e.Source)
}
