package terminal

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/engine"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entries = []types.Entry{
	{Kind: types.KindSymlink, Target: "/home/u/.vimrc", Source: "files/vimrc"},
	{Kind: types.KindCopy, Target: "/home/u/.gitconfig", Source: "/df/gitconfig"},
}

func TestRenderer_PlanTable(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, New(buf).RenderResult(entries))

	out := buf.String()
	for _, want := range []string{"KIND", "TARGET", "SOURCE", "🔗 symlink", "📄 copy", "/home/u/.vimrc", "files/vimrc", "/df/gitconfig"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "╭", "rounded border")
	assert.Contains(t, out, "2 entries (1 symlink, 1 copy, 0 template)")
}

func TestRenderer_NoANSIOnBuffer(t *testing.T) {
	buf := &bytes.Buffer{}
	report := &engine.Report{Results: []engine.EntryResult{{Entry: entries[0]}}}
	require.NoError(t, New(buf).RenderResult(report))

	assert.NotContains(t, buf.String(), "\x1b[", "a buffer has no color profile")
	assert.Contains(t, buf.String(), "✓ symlink  /home/u/.vimrc -> files/vimrc  linked")
}
