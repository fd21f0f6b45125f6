package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv isolates HOME and the XDG directories for one test
type testEnv struct {
	home     string
	dotfiles string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		home:     filepath.Join(root, "home"),
		dotfiles: filepath.Join(root, "dotfiles"),
	}
	testutil.CreateDir(t, root, "home")
	testutil.CreateDir(t, root, "dotfiles")

	t.Setenv("HOME", env.home)
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvStateDir, "")
	return env
}

func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.CreateFile(t, e.dotfiles, name, content)
}

// manifest writes a manifest with one entry of each kind
func (e *testEnv) manifest(t *testing.T) string {
	t.Helper()
	gitconfig := e.write(t, "gitconfig", "[user]\n")
	profile := e.write(t, "profile", "export HOME={{HOME}}\n")
	return e.write(t, "dotfiles.toml", `
[symlink]
"~/.vimrc" = "files/vimrc"

[copy]
"~/.gitconfig" = "`+gitconfig+`"

[template]
"$HOME/.profile" = "`+profile+`"
`)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_NoCommand(t *testing.T) {
	newTestEnv(t)
	stdout, _, err := execute(t)
	require.Error(t, err)
	assert.Equal(t, MsgErrNoCommand, err.Error())
	assert.Contains(t, stdout, "COMMANDS:")
	assert.Contains(t, stdout, "sync")
}

func TestVersion(t *testing.T) {
	newTestEnv(t)
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dotsync version dev")
	assert.Contains(t, stdout, "Commit: unknown")
}

func TestCompletion(t *testing.T) {
	newTestEnv(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, stdout, "dotsync")
		})
	}

	_, _, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestSync(t *testing.T) {
	env := newTestEnv(t)
	manifest := env.manifest(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.home, ".vimrc"), []byte("old"), 0644))

	stdout, _, err := execute(t, "sync", "--manifest", manifest, "--format", "text")
	require.NoError(t, err)

	testutil.AssertSymlink(t, filepath.Join(env.home, ".vimrc"), "files/vimrc")
	testutil.AssertFileContent(t, filepath.Join(env.home, ".gitconfig"), "[user]\n")
	testutil.AssertFileContent(t, filepath.Join(env.home, ".profile"), "export HOME="+env.home+"\n")

	backups, err := filepath.Glob(filepath.Join(env.home, ".vimrc.backup.*"))
	require.NoError(t, err)
	require.Len(t, backups, 1)

	assert.Contains(t, stdout, "3 entries: 3 ok, 0 failed, 1 backed up")
	assert.Contains(t, stdout, "backup: "+backups[0])
}

func TestSync_DryRunFromConfigEnv(t *testing.T) {
	env := newTestEnv(t)
	manifest := env.manifest(t)
	t.Setenv("DOTSYNC_SYNC_DRY_RUN", "true")

	stdout, _, err := execute(t, "sync", "-m", manifest, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[DRY RUN]")

	_, err = os.Lstat(filepath.Join(env.home, ".vimrc"))
	assert.True(t, os.IsNotExist(err))

	// the flag wins over the configuration
	_, _, err = execute(t, "sync", "-m", manifest, "--format", "text", "--dry-run=false")
	require.NoError(t, err)
	_, err = os.Lstat(filepath.Join(env.home, ".vimrc"))
	assert.NoError(t, err)
}

func TestSync_EntryFailures(t *testing.T) {
	env := newTestEnv(t)
	manifest := env.write(t, "dotfiles.toml", `
[symlink]
"~/.vimrc" = "files/vimrc"

[copy]
"~/.missing" = "`+filepath.Join(env.dotfiles, "does-not-exist")+`"
`)

	t.Run("reported but not fatal", func(t *testing.T) {
		stdout, _, err := execute(t, "sync", "-m", manifest, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, stdout, "COPY")
		assert.Contains(t, stdout, "1 ok, 1 failed")
	})

	t.Run("fatal with --strict", func(t *testing.T) {
		_, _, err := execute(t, "sync", "-m", manifest, "--format", "text", "--strict")
		require.Error(t, err)
		assert.Equal(t, "1 of 2 entries failed", err.Error())
	})
}

func TestSync_ManifestErrors(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing", func(t *testing.T) {
		_, _, err := execute(t, "sync", "-m", filepath.Join(env.dotfiles, "nope.toml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestLoad))
	})

	t.Run("unknown section", func(t *testing.T) {
		path := env.write(t, "bad.toml", "[hardlink]\n\"~/.a\" = \"a\"\n")
		_, _, err := execute(t, "sync", "-m", path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
	})

	t.Run("unset variable", func(t *testing.T) {
		path := env.write(t, "unset.toml", "[symlink]\n\"$DOTSYNC_TEST_UNSET_VAR/x\" = \"x\"\n")
		_, _, err := execute(t, "sync", "-m", path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPathExpansion))
		_, statErr := os.Lstat(filepath.Join(env.home, ".vimrc"))
		assert.True(t, os.IsNotExist(statErr), "nothing is synced after a parse failure")
	})
}

func TestSync_ManifestFromConfigFile(t *testing.T) {
	env := newTestEnv(t)
	manifest := env.manifest(t)
	configPath := filepath.Join(env.dotfiles, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("manifest = \""+manifest+"\"\n"), 0644))

	stdout, _, err := execute(t, "sync", "--config", configPath, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 entries")
}

func TestSync_JSON(t *testing.T) {
	env := newTestEnv(t)
	manifest := env.manifest(t)

	stdout, _, err := execute(t, "sync", "-m", manifest, "--format", "json")
	require.NoError(t, err)

	var report struct {
		Succeeded int `json:"succeeded"`
		Results   []struct {
			Kind   string `json:"kind"`
			Target string `json:"target"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 3, report.Succeeded)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "symlink", report.Results[0].Kind)
	assert.Equal(t, filepath.Join(env.home, ".vimrc"), report.Results[0].Target)
}

func TestSync_InvalidFormat(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := execute(t, "sync", "-m", env.manifest(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
}

func TestPlan(t *testing.T) {
	env := newTestEnv(t)
	manifest := env.manifest(t)

	stdout, _, err := execute(t, "plan", "-m", manifest, "--format", "text")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "symlink  "+filepath.Join(env.home, ".vimrc")+" -> files/vimrc", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "copy     "+filepath.Join(env.home, ".gitconfig")))
	assert.True(t, strings.HasPrefix(lines[2], "template "+filepath.Join(env.home, ".profile")))
	assert.Equal(t, "3 entries (1 symlink, 1 copy, 1 template)", lines[3])

	_, err = os.Lstat(filepath.Join(env.home, ".vimrc"))
	assert.True(t, os.IsNotExist(err), "plan does not touch the filesystem")
}

func TestBootstrap_NoSection(t *testing.T) {
	env := newTestEnv(t)
	stdout, _, err := execute(t, "bootstrap", "-m", env.manifest(t), "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, MsgNoBootstrap)
}

func TestBootstrap_RunOnceScript(t *testing.T) {
	env := newTestEnv(t)
	marker := filepath.Join(env.dotfiles, "ran")
	script := env.write(t, "setup.sh", "echo x >> "+marker+"\n")
	manifest := env.write(t, "dotfiles.toml", `
[[bootstrap.run_once]]
script = "`+script+`"
description = "Write marker"
`)

	stdout, _, err := execute(t, "bootstrap", "-m", manifest, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ script Write marker")

	stdout, _, err = execute(t, "bootstrap", "-m", manifest, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(already ran)")

	_, _, err = execute(t, "bootstrap", "-m", manifest, "--format", "text", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "x\nx\n", string(data), "second run skipped, forced run executed")
}

func TestBootstrap_MissingScriptFails(t *testing.T) {
	env := newTestEnv(t)
	manifest := env.write(t, "dotfiles.toml", `
[[bootstrap.run_once]]
script = "`+filepath.Join(env.dotfiles, "missing.sh")+`"
`)

	stdout, _, err := execute(t, "bootstrap", "-m", manifest, "--format", "text")
	require.Error(t, err)
	assert.Equal(t, "1 bootstrap steps failed", err.Error())
	assert.Contains(t, stdout, "BOOTSTRAP_SCRIPT")
}

func TestGenConfig(t *testing.T) {
	env := newTestEnv(t)
	configDir := filepath.Join(env.dotfiles, "cfg")
	t.Setenv(paths.EnvConfigDir, configDir)

	stdout, _, err := execute(t, "gen-config")
	require.NoError(t, err)
	assert.Contains(t, stdout, `# manifest = "dotfiles.toml"`)

	stdout, _, err = execute(t, "gen-config", "-w")
	require.NoError(t, err)
	path := filepath.Join(configDir, paths.ConfigFileName)
	assert.Contains(t, stdout, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, _, err = execute(t, "gen-config", "-w")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestBrokenConfigOnlyAffectsCommandsThatNeedIt(t *testing.T) {
	env := newTestEnv(t)
	configPath := env.write(t, "broken.toml", "[sync\n")

	_, _, err := execute(t, "version", "--config", configPath)
	require.NoError(t, err)

	_, _, err = execute(t, "plan", "--config", configPath, "-m", env.manifest(t))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestHelpStyle(t *testing.T) {
	plain := helpStyle{}
	assert.Equal(t, "plain", plain.bold("plain"))
	assert.Equal(t, "FLAGS", plain.boldUpper("flags"))

	styled := helpStyle{styled: true}
	assert.Contains(t, styled.bold("plain"), "plain")
	assert.Contains(t, styled.boldUpper("flags"), "FLAGS")

	funcs := plain.funcs()
	for _, name := range []string{"bold", "upper", "boldUpper"} {
		assert.Contains(t, funcs, name)
	}
}

func TestHelpStyle_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, newHelpStyle().styled)
}
