// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/arthur-debert/dotsync/pkg/ui/format"
	"github.com/arthur-debert/dotsync/pkg/ui/text"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Adaptive palette, readable on light and dark backgrounds
var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	colorFailure = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	colorHeader  = lipgloss.AdaptiveColor{Light: "#0550AE", Dark: "#58A6FF"}
)

// Renderer provides styled terminal output. Line layout is shared with the
// text renderer; only the decoration differs.
type Renderer struct {
	*text.Renderer
	output   io.Writer
	lg       *lipgloss.Renderer
	header   lipgloss.Style
	muted    lipgloss.Style
	bordered lipgloss.Style
}

// New creates a new terminal renderer. Color support is detected from w,
// so writing to a pipe or buffer produces unstyled text.
func New(w io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(w)
	style := func(c lipgloss.TerminalColor, bold bool) text.Style {
		s := lg.NewStyle().Foreground(c).Bold(bold)
		return func(str string) string { return s.Render(str) }
	}

	styles := text.Styles{
		Success: style(colorSuccess, false),
		Failure: style(colorFailure, false),
		Warning: style(colorWarning, true),
		Muted:   style(colorMuted, false),
		Header:  style(colorHeader, true),
	}

	return &Renderer{
		Renderer: text.NewWithStyles(w, styles),
		output:   w,
		lg:       lg,
		header:   lg.NewStyle().Foreground(colorHeader).Bold(true).Padding(0, 1),
		muted:    lg.NewStyle().Padding(0, 1),
		bordered: lg.NewStyle().Foreground(colorMuted),
	}
}

// RenderResult renders plans as a table and everything else like the text
// renderer, with colors
func (r *Renderer) RenderResult(result interface{}) error {
	if entries, ok := result.([]types.Entry); ok {
		_, err := io.WriteString(r.output, r.PlanTable(entries)+"\n")
		return err
	}
	return r.Renderer.RenderResult(result)
}

// PlanTable draws entries as a bordered table with a summary line
func (r *Renderer) PlanTable(entries []types.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			format.KindEmoji(entry.Kind) + " " + entry.Kind.String(),
			entry.Target,
			format.Arrow(entry.Kind),
			entry.Source,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.bordered).
		Headers("KIND", "TARGET", "", "SOURCE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.muted
		})

	return t.String() + "\n" + r.header.Render(text.PlanSummary(entries))
}
