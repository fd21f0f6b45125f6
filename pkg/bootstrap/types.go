package bootstrap

import (
	"fmt"
	"strings"
)

// Manager is a system package manager
type Manager int

const (
	// ManagerUnknown is the zero value, left when a package names no manager
	ManagerUnknown Manager = iota
	Apt
	Brew
	Flatpak
	Pacman
	Dnf
)

var managerNames = map[Manager]string{
	Apt:     "apt",
	Brew:    "brew",
	Flatpak: "flatpak",
	Pacman:  "pacman",
	Dnf:     "dnf",
}

// ParseManager converts a manifest value such as "brew" into a Manager
func ParseManager(s string) (Manager, error) {
	for m, name := range managerNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return ManagerUnknown, fmt.Errorf("unknown package manager %q", s)
}

func (m Manager) String() string {
	if m == ManagerUnknown {
		return "unknown"
	}
	if name, ok := managerNames[m]; ok {
		return name
	}
	return fmt.Sprintf("manager(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler
func (m Manager) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Manager) UnmarshalText(text []byte) error {
	parsed, err := ParseManager(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// NeedsSudo reports whether the manager installs system-wide and needs root
func (m Manager) NeedsSudo() bool {
	switch m {
	case Apt, Pacman, Dnf:
		return true
	default:
		return false
	}
}

// InstallCommand returns the command line that installs pkg. With sudo set,
// managers that need root are prefixed with sudo.
func (m Manager) InstallCommand(pkg string, sudo bool) []string {
	var args []string
	switch m {
	case Apt:
		args = []string{"apt", "install", pkg}
	case Brew:
		args = []string{"brew", "install", pkg}
	case Flatpak:
		args = []string{"flatpak", "install", "--noninteractive", pkg}
	case Pacman:
		args = []string{"pacman", "-S", pkg}
	case Dnf:
		args = []string{"dnf", "install", pkg}
	default:
		return nil
	}
	if sudo && m.NeedsSudo() {
		args = append([]string{"sudo"}, args...)
	}
	return args
}

// Package is one package to install
type Package struct {
	Manager Manager `toml:"manager" yaml:"manager" json:"manager"`
	Name    string  `toml:"name" yaml:"name" json:"name"`
}

// Script is a setup script that runs once per machine
type Script struct {
	Path        string `toml:"script" yaml:"script" json:"script"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
}

// Label returns the description, or the path when there is none
func (s Script) Label() string {
	if s.Description != "" {
		return s.Description
	}
	return s.Path
}

// Config is the [bootstrap] section of the manifest
type Config struct {
	Packages []Package `toml:"packages" yaml:"packages"`
	RunOnce  []Script  `toml:"run_once" yaml:"run_once"`
}

// Validate checks that every package names a known manager and a package,
// and that every script has a path
func (c *Config) Validate() error {
	for i, pkg := range c.Packages {
		if pkg.Manager == ManagerUnknown {
			return fmt.Errorf("bootstrap package %d (%q): missing manager", i+1, pkg.Name)
		}
		if _, ok := managerNames[pkg.Manager]; !ok {
			return fmt.Errorf("bootstrap package %d (%q): unknown manager %s", i+1, pkg.Name, pkg.Manager)
		}
		if strings.TrimSpace(pkg.Name) == "" {
			return fmt.Errorf("bootstrap package %d: missing name", i+1)
		}
	}
	for i, script := range c.RunOnce {
		if strings.TrimSpace(script.Path) == "" {
			return fmt.Errorf("bootstrap run_once %d: missing script", i+1)
		}
	}
	return nil
}
