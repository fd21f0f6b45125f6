// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dotsync/pkg/bootstrap"
	"github.com/arthur-debert/dotsync/pkg/engine"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// Entry is the JSON form of a manifest entry
type Entry struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Source string `json:"source"`
}

// EntryResult is the JSON form of one sync outcome
type EntryResult struct {
	Entry
	OK     bool   `json:"ok"`
	Backup string `json:"backup,omitempty"`
	Bytes  int64  `json:"bytes,omitempty"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Report is the JSON form of a sync report
type Report struct {
	DryRun    bool          `json:"dryRun"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Backups   int           `json:"backups"`
	Results   []EntryResult `json:"results"`
}

// Bootstrap is the JSON form of a bootstrap result
type Bootstrap struct {
	Installed      []bootstrap.Package `json:"installed"`
	FailedPackages []bootstrap.Package `json:"failedPackages"`
	ScriptsRun     []bootstrap.Script  `json:"scriptsRun"`
	ScriptsSkipped []bootstrap.Script  `json:"scriptsSkipped"`
	FailedScripts  []bootstrap.Script  `json:"failedScripts"`
	Errors         []string            `json:"errors"`
}

// RenderResult renders any result type as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *engine.Report:
		return r.encoder.Encode(NewReport(v))
	case []types.Entry:
		return r.encoder.Encode(NewEntries(v))
	case *bootstrap.Result:
		return r.encoder.Encode(NewBootstrap(v))
	default:
		return r.encoder.Encode(result)
	}
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	messageObj := map[string]string{
		"message": msg,
	}
	return r.encoder.Encode(messageObj)
}

func newEntry(e types.Entry) Entry {
	return Entry{Kind: e.Kind.String(), Target: e.Target, Source: e.Source}
}

// NewEntries converts entries for encoding
func NewEntries(entries []types.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, newEntry(e))
	}
	return out
}

// NewReport converts a sync report for encoding
func NewReport(report *engine.Report) Report {
	out := Report{
		DryRun:    report.DryRun,
		Succeeded: report.Succeeded(),
		Failed:    report.Failed(),
		Backups:   report.Backups(),
		Results:   make([]EntryResult, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		er := EntryResult{
			Entry:  newEntry(res.Entry),
			OK:     res.OK(),
			Backup: res.Backup,
			Bytes:  res.Bytes,
		}
		if res.Err != nil {
			er.Code = string(errors.GetErrorCode(res.Err))
			er.Error = res.Err.Error()
		}
		out.Results = append(out.Results, er)
	}
	return out
}

// NewBootstrap converts a bootstrap result for encoding
func NewBootstrap(result *bootstrap.Result) Bootstrap {
	out := Bootstrap{
		Installed:      nonNil(result.Installed),
		FailedPackages: nonNil(result.FailedPackages),
		ScriptsRun:     nonNil(result.ScriptsRun),
		ScriptsSkipped: nonNil(result.ScriptsSkipped),
		FailedScripts:  nonNil(result.FailedScripts),
		Errors:         make([]string, 0, len(result.Errors)),
	}
	for _, err := range result.Errors {
		out.Errors = append(out.Errors, err.Error())
	}
	return out
}

// nonNil keeps empty lists as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
