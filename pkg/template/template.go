package template

import (
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
)

const (
	// HomePlaceholder is replaced with the home directory
	HomePlaceholder = "{{HOME}}"

	// UnknownHome is substituted when the home directory cannot be determined
	UnknownHome = "~"
)

// Renderer substitutes placeholders in template sources.
type Renderer struct {
	home string
}

// NewRenderer creates a Renderer. An empty home renders as UnknownHome.
func NewRenderer(home string) *Renderer {
	return &Renderer{home: home}
}

// Home returns the value substituted for HomePlaceholder
func (r *Renderer) Home() string {
	if r.home == "" {
		return UnknownHome
	}
	return r.home
}

// Render returns text with every HomePlaceholder replaced
func (r *Renderer) Render(text string) string {
	return strings.ReplaceAll(text, HomePlaceholder, r.Home())
}

// RenderFile reads source, renders it and writes the result to target,
// replacing any existing content. It returns the number of bytes written.
func (r *Renderer) RenderFile(fs types.FS, source, target string) (int64, error) {
	content, err := fs.ReadFile(source)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrTemplateRead, "failed to read template %s", source).
			WithDetail("source", source)
	}

	rendered := []byte(r.Render(string(content)))
	if err := fs.WriteFile(target, rendered, 0644); err != nil {
		return 0, errors.Wrapf(err, errors.ErrTemplateWrite, "failed to write rendered template %s", target).
			WithDetail("target", target)
	}

	return int64(len(rendered)), nil
}
