// Package ui renders dotsync results for people and for scripts.
//
// Three formats are supported: styled terminal output (lipgloss), plain
// text, and JSON. FormatAuto picks between the first two from the writer.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotsync/pkg/ui/json"
	"github.com/arthur-debert/dotsync/pkg/ui/terminal"
	"github.com/arthur-debert/dotsync/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
//
// RenderResult understands *engine.Report (a sync), []types.Entry (a plan)
// and *bootstrap.Result. Other values are printed with %+v.
type Renderer interface {
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer writing to output in the given format
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
