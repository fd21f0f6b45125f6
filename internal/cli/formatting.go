package cli

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// helpStyle decorates help and usage text. Styling is off when help goes to
// a pipe or NO_COLOR is set.
type helpStyle struct {
	styled bool
}

func newHelpStyle() helpStyle {
	if os.Getenv("NO_COLOR") != "" {
		return helpStyle{}
	}
	fd := os.Stdout.Fd()
	return helpStyle{styled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (h helpStyle) bold(s string) string {
	if !h.styled {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func (h helpStyle) boldUpper(s string) string {
	return h.bold(strings.ToUpper(s))
}

func (h helpStyle) funcs() template.FuncMap {
	return template.FuncMap{
		"bold":      h.bold,
		"upper":     strings.ToUpper,
		"boldUpper": h.boldUpper,
	}
}

// initTemplateFormatting registers bold, upper and boldUpper for the usage
// template in msgs/usage-template.txt
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(newHelpStyle().funcs())
}
