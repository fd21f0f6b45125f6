package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/arthur-debert/dotsync/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchSync(t *testing.T) {
	env := newTestEnv(t)
	profile := env.write(t, "profile", "v1 {{HOME}}\n")
	manifest := env.write(t, "dotfiles.toml", `
[symlink]
"~/.a" = "a"

[template]
"~/.profile" = "`+profile+`"
`)

	out := &bytes.Buffer{}
	r, err := ui.NewRenderer(ui.FormatText, out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchSync(ctx, syncOptions{Manifest: manifest}, r) }()

	exists := func(name string) func() bool {
		return func() bool {
			_, err := os.Lstat(filepath.Join(env.home, name))
			return err == nil
		}
	}
	require.Eventually(t, exists(".a"), 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, exists(".profile"), 5*time.Second, 20*time.Millisecond)

	// editing the manifest triggers another pass
	require.NoError(t, os.WriteFile(manifest, []byte(`
[symlink]
"~/.a" = "a"
"~/.b" = "b"

[template]
"~/.profile" = "`+profile+`"
`), 0644))
	require.Eventually(t, exists(".b"), 5*time.Second, 20*time.Millisecond)

	// so does editing a template source
	require.NoError(t, os.WriteFile(profile, []byte("v2 {{HOME}}\n"), 0644))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(env.home, ".profile"))
		return err == nil && string(data) == "v2 "+env.home+"\n"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchSync did not stop")
	}

	assert.Contains(t, out.String(), "Watching "+manifest)
	assert.Contains(t, out.String(), "Change detected in")
	assert.Contains(t, out.String(), MsgWatchStopped)
}

func TestWatchSync_MissingManifestDirectory(t *testing.T) {
	env := newTestEnv(t)
	r, err := ui.NewRenderer(ui.FormatText, &bytes.Buffer{})
	require.NoError(t, err)

	err = watchSync(context.Background(), syncOptions{
		Manifest: filepath.Join(env.dotfiles, "missing", "dotfiles.toml"),
	}, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestNewEngine_TemplatesUseResolverHome(t *testing.T) {
	env := newTestEnv(t)
	profile := env.write(t, "profile", "export HOME={{HOME}}\n")
	manifest := env.write(t, "dotfiles.toml", `
[template]
"~/.profile" = "`+profile+`"
`)

	// a home that differs from $HOME
	altHome := t.TempDir()
	alt := paths.MapEnv(map[string]string{"HOME": altHome})

	_, entries, err := loadEntries(manifest, alt)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(altHome, ".profile"), entries[0].Target)

	report := newEngine(syncOptions{Manifest: manifest}, alt).Sync(entries)
	require.NoError(t, report.Err())

	testutil.AssertFileContent(t, filepath.Join(altHome, ".profile"), "export HOME="+altHome+"\n")
	testutil.AssertNoFile(t, filepath.Join(env.home, ".profile"))
}
