package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
)

// Resolver expands shell notation in target paths.
type Resolver struct {
	env     Env
	workDir string
}

// NewResolver creates a Resolver that makes relative results absolute
// against the process working directory.
func NewResolver(env Env) *Resolver {
	wd, _ := os.Getwd()
	return &Resolver{env: env, workDir: wd}
}

// WithWorkDir returns a copy of r that resolves relative results against dir.
func (r *Resolver) WithWorkDir(dir string) *Resolver {
	return &Resolver{env: r.env, workDir: dir}
}

// Resolve expands s and returns a clean absolute path.
//
// A leading "~" or "~/" becomes the home directory; "~user" is kept as is.
// $NAME and ${NAME} become the variable's value and ${NAME:-default} falls
// back to default when NAME is unset or empty. A "$" that does not start a
// reference is literal. Unset variables and malformed references return an
// ErrExpansion error carrying the original string in the "path" detail.
func (r *Resolver) Resolve(s string) (string, error) {
	expanded, err := r.Expand(s)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(r.workDir, expanded)
	}
	return filepath.Clean(expanded), nil
}

// Expand performs the same substitutions as Resolve without cleaning the
// result or making it absolute.
func (r *Resolver) Expand(s string) (string, error) {
	if s == "" {
		return "", expansionError(s, "empty path")
	}

	home, rest, err := r.splitTilde(s)
	if err != nil {
		return "", err
	}
	// the home directory is inserted as is, never scanned for references
	expanded, err := r.expandVars(s, rest)
	if err != nil {
		return "", err
	}
	return home + expanded, nil
}

// splitTilde separates a leading "~" from the rest of s and returns the home
// directory that replaces it, or "" when s has no such prefix.
func (r *Resolver) splitTilde(s string) (string, string, error) {
	if s[0] != '~' {
		return "", s, nil
	}
	if len(s) > 1 && s[1] != '/' && s[1] != filepath.Separator {
		// ~user is not ours to resolve
		return "", s, nil
	}
	if r.env.Home == "" {
		return "", "", expansionError(s, "home directory is unknown")
	}
	return r.env.Home, s[1:], nil
}

func (r *Resolver) expandVars(orig, s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}

		// $ at the end of the string
		if i+1 >= len(s) {
			b.WriteByte('$')
			i++
			continue
		}

		if s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return "", expansionError(orig, "unterminated ${")
			}
			value, err := r.braced(orig, s[i+2:i+2+end])
			if err != nil {
				return "", err
			}
			b.WriteString(value)
			i += end + 3
			continue
		}

		n := nameLength(s[i+1:])
		if n == 0 {
			b.WriteByte('$')
			i++
			continue
		}
		value, err := r.lookup(orig, s[i+1:i+1+n])
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		i += n + 1
	}

	return b.String(), nil
}

// braced resolves the inside of ${...}
func (r *Resolver) braced(orig, body string) (string, error) {
	name, def, hasDefault := strings.Cut(body, ":-")
	if name == "" || nameLength(name) != len(name) {
		return "", expansionError(orig, "bad substitution ${"+body+"}")
	}
	if hasDefault {
		if r.env.Lookup != nil {
			if v, ok := r.env.Lookup(name); ok && v != "" {
				return v, nil
			}
		}
		return def, nil
	}
	return r.lookup(orig, name)
}

func (r *Resolver) lookup(orig, name string) (string, error) {
	if r.env.Lookup != nil {
		if v, ok := r.env.Lookup(name); ok {
			return v, nil
		}
	}
	return "", expansionError(orig, "environment variable "+name+" is not set").
		WithDetail("variable", name)
}

// nameLength returns the length of the shell variable name at the start of s.
// Names start with a letter or underscore, so "$1" is not a reference.
func nameLength(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return i
		}
	}
	return len(s)
}

func expansionError(path, reason string) *errors.Error {
	return errors.Newf(errors.ErrExpansion, "cannot expand %q: %s", path, reason).
		WithDetail("path", path)
}
