package paths

import (
	"os"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// Env is the environment a Resolver expands against.
type Env struct {
	// Home replaces a leading ~. Empty means unknown.
	Home string

	// Lookup returns the value of an environment variable and whether it is set.
	Lookup func(name string) (string, bool)
}

// MapEnv builds an Env whose variables come from vars. HOME, when present in
// vars, also becomes the Home value.
func MapEnv(vars map[string]string) Env {
	return Env{
		Home: vars[EnvHome],
		Lookup: func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		},
	}
}

// SystemEnv reads the process environment. It is the only place the ambient
// environment enters path expansion.
func SystemEnv() Env {
	return Env{
		Home:   GetHomeDirectoryWithDefault(""),
		Lookup: os.LookupEnv,
	}
}

// GetHomeDirectory returns the user's home directory, falling back to $HOME
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", err
	}
	return homeDir, nil
}

// GetHomeDirectoryWithDefault returns the home directory or a default value
func GetHomeDirectoryWithDefault(defaultDir string) string {
	homeDir, err := GetHomeDirectory()
	if err != nil {
		return defaultDir
	}
	return homeDir
}
