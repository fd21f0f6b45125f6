package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver() *paths.Resolver {
	env := paths.MapEnv(map[string]string{
		"HOME":            "/home/u",
		"XDG_CONFIG_HOME": "/home/u/.config",
		"EMPTY":           "",
		"APP_1":           "app",
	})
	return paths.NewResolver(env).WithWorkDir("/work")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tilde_prefix", "~/config/app.conf", "/home/u/config/app.conf"},
		{"bare_tilde", "~", "/home/u"},
		{"dollar_var", "$HOME/.vimrc", "/home/u/.vimrc"},
		{"braced_var", "${XDG_CONFIG_HOME}/nvim/init.lua", "/home/u/.config/nvim/init.lua"},
		{"var_mid_path", "/opt/$APP_1/conf", "/opt/app/conf"},
		{"braced_var_adjacent_text", "/opt/${APP_1}rc", "/opt/apprc"},
		{"default_used_when_unset", "${NOPE:-/etc}/x", "/etc/x"},
		{"default_used_when_empty", "${EMPTY:-/etc}/x", "/etc/x"},
		{"default_ignored_when_set", "${HOME:-/nope}/x", "/home/u/x"},
		{"lone_dollar_is_literal", "/tmp/a$", "/tmp/a$"},
		{"dollar_before_non_name", "/tmp/$-x", "/tmp/$-x"},
		{"dollar_before_digit_is_literal", "/tmp/$1foo", "/tmp/$1foo"},
		{"vars_after_tilde", "~/$APP_1/rc", "/home/u/app/rc"},
		{"absolute_untouched", "/etc/hosts", "/etc/hosts"},
		{"relative_made_absolute", "conf/app.conf", "/work/conf/app.conf"},
		{"tilde_user_left_alone", "~bob/x", "/work/~bob/x"},
		{"result_is_cleaned", "~/a/../b//c", "/home/u/b/c"},
	}

	r := newResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unset_var", "$MISSING/x"},
		{"unset_braced_var", "${MISSING}/x"},
		{"unterminated_brace", "${HOME/x"},
		{"empty_braces", "${}/x"},
		{"invalid_name_in_braces", "${HO ME}/x"},
		{"empty_string", ""},
	}

	r := newResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.input)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, errors.IsErrorCode(err, errors.ErrExpansion))
			assert.Equal(t, tt.input, errors.GetErrorDetails(err)["path"],
				"the error should carry the original string")
		})
	}
}

func TestResolve_UnsetVariableDetail(t *testing.T) {
	_, err := newResolver().Resolve("$MISSING/x")
	require.Error(t, err)
	assert.Equal(t, "MISSING", errors.GetErrorDetails(err)["variable"])
}

func TestResolve_HomeIsNotExpandedAgain(t *testing.T) {
	r := paths.NewResolver(paths.Env{
		Home:   "/home/a$b",
		Lookup: func(string) (string, bool) { return "", false },
	})

	got, err := r.Resolve("~/x")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/home/a$b/x"), got)

	got, err = r.Resolve("~")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/home/a$b"), got)
}

func TestResolve_TildeWithoutHome(t *testing.T) {
	r := paths.NewResolver(paths.MapEnv(map[string]string{}))
	_, err := r.Resolve("~/.vimrc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrExpansion))
}

func TestResolve_NilLookup(t *testing.T) {
	r := paths.NewResolver(paths.Env{Home: "/home/u"})

	got, err := r.Resolve("~/${X:-d}")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/home/u/d"), got)

	_, err = r.Resolve("$X")
	assert.Error(t, err)
}

func TestExpand_KeepsRelative(t *testing.T) {
	got, err := newResolver().Expand("$APP_1/conf")
	require.NoError(t, err)
	assert.Equal(t, "app/conf", got)
}

func TestNewResolver_UsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := paths.NewResolver(paths.Env{}).Resolve("rel")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "rel"), got)
}

func TestSystemEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DOTSYNC_TEST_VAR", "value")

	env := paths.SystemEnv()
	assert.Equal(t, home, env.Home)

	v, ok := env.Lookup("DOTSYNC_TEST_VAR")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
}
