package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Home creates a temporary home directory and points HOME and the XDG base
// directories at it for the duration of the test. DOTSYNC_* overrides are
// cleared so the host environment cannot leak into the test.
func Home(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	t.Setenv("DOTSYNC_CONFIG_DIR", "")
	t.Setenv("DOTSYNC_STATE_DIR", "")
	return home
}

// CreateFile creates a file with the given content below dir, creating
// parent directories as needed, and returns its path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	return CreateFileMode(t, dir, name, content, 0644)
}

// CreateFileMode is CreateFile with explicit permissions.
func CreateFileMode(t *testing.T, dir, name, content string, perm os.FileMode) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), perm), "create file %s", path)
	return path
}

// CreateDir creates a directory below parent and returns its path.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755), "create directory %s", path)
	return path
}

// CreateSymlink creates link pointing at target. The target does not need
// to exist.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755), "create parent of %s", link)
	require.NoError(t, os.Symlink(target, link), "create symlink %s -> %s", link, target)
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "read file %s", path)
	return string(data)
}

// ReadSymlink returns the stored destination of the link at path.
func ReadSymlink(t *testing.T, path string) string {
	t.Helper()

	dest, err := os.Readlink(path)
	require.NoError(t, err, "read symlink %s", path)
	return dest
}

// AssertFileContent checks that path is a regular file holding expected.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "stat %s", path)
	require.True(t, info.Mode().IsRegular(), "%s is not a regular file", path)
	require.Equal(t, expected, ReadFile(t, path), "content of %s", path)
}

// AssertSymlink checks that link is a symlink storing expectedDest verbatim.
func AssertSymlink(t *testing.T, link, expectedDest string) {
	t.Helper()

	info, err := os.Lstat(link)
	require.NoError(t, err, "lstat %s", link)
	require.True(t, info.Mode()&os.ModeSymlink != 0, "%s is not a symlink", link)
	require.Equal(t, expectedDest, ReadSymlink(t, link), "destination of %s", link)
}

// AssertNoFile checks that nothing exists at path, not even a dangling link.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "%s exists but should not", path)
}
