// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/bootstrap"
	"github.com/arthur-debert/dotsync/pkg/engine"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/arthur-debert/dotsync/pkg/ui/format"
)

// Style decorates a piece of output
type Style func(string) string

// Styles holds the decorations used for each role in the output
type Styles struct {
	Success Style
	Failure Style
	Warning Style
	Muted   Style
	Header  Style
}

func plain(s string) string { return s }

// PlainStyles leaves every string untouched
func PlainStyles() Styles {
	return Styles{Success: plain, Failure: plain, Warning: plain, Muted: plain, Header: plain}
}

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	styles Styles
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return NewWithStyles(output, PlainStyles())
}

// NewWithStyles creates a text renderer that decorates its output
func NewWithStyles(output io.Writer, styles Styles) *Renderer {
	return &Renderer{output: output, styles: styles}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *engine.Report:
		return r.write(r.Report(v))
	case []types.Entry:
		return r.write(r.Plan(v))
	case *bootstrap.Result:
		return r.write(r.Bootstrap(v))
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	return r.write(r.styles.Failure(format.FailureIcon+" Error: "+err.Error()) + "\n")
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(msg + "\n")
}

// Report formats a sync report, one line per entry then a summary
func (r *Renderer) Report(report *engine.Report) string {
	var b strings.Builder
	for _, res := range report.Results {
		entry := res.Entry
		line := fmt.Sprintf("%-8s %s %s %s  %s",
			entry.Kind, entry.Target, format.Arrow(entry.Kind), entry.Source,
			format.Status(res, report.DryRun))
		if size := format.Size(res.Bytes); size != "" {
			line += " (" + size + ")"
		}

		if res.OK() {
			b.WriteString(r.styles.Success(format.SuccessIcon) + " " + line + "\n")
		} else {
			b.WriteString(r.styles.Failure(format.FailureIcon) + " " + line + "\n")
			b.WriteString("    " + r.styles.Failure(res.Err.Error()) + "\n")
		}
		if res.Backup != "" {
			b.WriteString("    " + r.styles.Muted("backup: "+res.Backup) + "\n")
		}
	}

	summary := format.Summary(report)
	if report.Failed() > 0 {
		summary = r.styles.Warning(summary)
	} else {
		summary = r.styles.Header(summary)
	}
	b.WriteString(summary + "\n")
	return b.String()
}

// Plan formats parsed entries without applying them
func (r *Renderer) Plan(entries []types.Entry) string {
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "%-8s %s %s %s\n", entry.Kind, entry.Target, format.Arrow(entry.Kind), entry.Source)
	}
	b.WriteString(r.styles.Header(PlanSummary(entries)) + "\n")
	return b.String()
}

// PlanSummary counts entries per kind
func PlanSummary(entries []types.Entry) string {
	counts := make(map[types.Kind]int, len(types.Kinds))
	for _, entry := range entries {
		counts[entry.Kind]++
	}
	parts := make([]string, 0, len(types.Kinds))
	for _, kind := range types.Kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[kind], kind))
	}
	return fmt.Sprintf("%s (%s)", format.Count(len(entries), "entry", "entries"), strings.Join(parts, ", "))
}

// Bootstrap formats a bootstrap result
func (r *Renderer) Bootstrap(result *bootstrap.Result) string {
	var b strings.Builder
	ok := r.styles.Success(format.SuccessIcon)
	fail := r.styles.Failure(format.FailureIcon)
	skip := r.styles.Muted("-")

	for _, pkg := range result.Installed {
		fmt.Fprintf(&b, "%s package %s (%s)\n", ok, pkg.Name, pkg.Manager)
	}
	for _, pkg := range result.FailedPackages {
		fmt.Fprintf(&b, "%s package %s (%s)\n", fail, pkg.Name, pkg.Manager)
	}
	for _, script := range result.ScriptsRun {
		fmt.Fprintf(&b, "%s script %s\n", ok, script.Label())
	}
	for _, script := range result.ScriptsSkipped {
		fmt.Fprintf(&b, "%s script %s %s\n", skip, script.Label(), r.styles.Muted("(already ran)"))
	}
	for _, script := range result.FailedScripts {
		fmt.Fprintf(&b, "%s script %s\n", fail, script.Label())
	}
	for _, err := range result.Errors {
		b.WriteString("    " + r.styles.Failure(err.Error()) + "\n")
	}

	summary := fmt.Sprintf("%d installed, %d failed; %d scripts run, %d skipped, %d failed",
		len(result.Installed), len(result.FailedPackages),
		len(result.ScriptsRun), len(result.ScriptsSkipped), len(result.FailedScripts))
	if len(result.Errors) > 0 {
		summary = r.styles.Warning(summary)
	} else {
		summary = r.styles.Header(summary)
	}
	b.WriteString(summary + "\n")
	return b.String()
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}
