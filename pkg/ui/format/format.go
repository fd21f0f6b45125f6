// Package format provides formatting utilities for UI presentation.
package format

import (
	"fmt"

	"github.com/arthur-debert/dotsync/pkg/engine"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/dustin/go-humanize"
)

// Terminal output markers
const (
	DryRunPrefix = engine.DryRunPrefix
	SuccessIcon  = "✓"
	FailureIcon  = "✗"
	WarningIcon  = "!"
)

// KindEmoji returns an emoji representation for the given entry kind.
func KindEmoji(kind types.Kind) string {
	switch kind {
	case types.KindSymlink:
		return "🔗"
	case types.KindCopy:
		return "📄"
	case types.KindTemplate:
		return "📝"
	default:
		return "⚙️"
	}
}

// Arrow is the separator drawn between target and source. Links point at
// their source; copies and renders pull from it.
func Arrow(kind types.Kind) string {
	if kind == types.KindSymlink {
		return "->"
	}
	return "<-"
}

// Action describes what was done for a successful entry
func Action(kind types.Kind, dryRun bool) string {
	var verb string
	switch kind {
	case types.KindSymlink:
		verb = "linked"
	case types.KindCopy:
		verb = "copied"
	case types.KindTemplate:
		verb = "rendered"
	default:
		verb = "placed"
	}
	if dryRun {
		return "would be " + verb
	}
	return verb
}

// Size formats a byte count for humans, empty for zero
func Size(n int64) string {
	if n <= 0 {
		return ""
	}
	return humanize.IBytes(uint64(n))
}

// Status is the short outcome column for an entry
func Status(res engine.EntryResult, dryRun bool) string {
	if res.Err != nil {
		return string(errors.GetErrorCode(res.Err))
	}
	return Action(res.Entry.Kind, dryRun)
}

// Summary is the one-line aggregate for a sync report
func Summary(report *engine.Report) string {
	s := fmt.Sprintf("%s: %d ok, %d failed, %d backed up",
		Count(len(report.Results), "entry", "entries"),
		report.Succeeded(), report.Failed(), report.Backups())
	if report.DryRun {
		s = DryRunPrefix + " " + s
	}
	return s
}

// Count formats n with the singular or plural noun
func Count(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
