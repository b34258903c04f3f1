package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestLoader(t *testing.T) (*Loader, string, string) {
	t.Helper()
	root := t.TempDir()
	user := filepath.Join(root, "home", ".gauntlet")
	project := filepath.Join(root, "project", ".gauntlet")
	return NewLoaderWithOptions(user, project), user, project
}

func TestLoadMergesLevels(t *testing.T) {
	l, user, project := newTestLoader(t)

	writeFile(t, filepath.Join(user, "settings.json"), `{
		"runtime": {"command": "deno", "args": ["run", "-A", "runtime.js"], "env": {"A": "user"}},
		"pluginPaths": ["~/plugins/*"],
		"enabledPlugins": {"apps": true, "emoji": true},
		"actionShortcuts": {"apps:search": {"copy": "ctrl+c"}},
		"theme": "dark"
	}`)
	writeFile(t, filepath.Join(project, "settings.json"), `{
		"pluginPaths": ["./plugins/*", "~/plugins/*"],
		"enabledPlugins": {"emoji": false},
		"actionShortcuts": {"apps:search": {"open": "alt+o"}}
	}`)
	writeFile(t, filepath.Join(project, "settings.local.json"), `{
		"runtime": {"command": "node", "env": {"B": "local"}},
		"theme": "light"
	}`)

	s, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "node", s.Runtime.Command)
	assert.Empty(t, s.Runtime.Args, "a new command drops the old args")
	assert.Equal(t, map[string]string{"A": "user", "B": "local"}, s.Runtime.Env)
	assert.Equal(t, []string{"~/plugins/*", "./plugins/*"}, s.PluginPaths)
	assert.Equal(t, map[string]bool{"apps": true, "emoji": false}, s.EnabledPlugins)
	assert.Equal(t, map[string]string{"copy": "ctrl+c", "open": "alt+o"}, s.ActionShortcuts["apps:search"])
	assert.Equal(t, ThemeLight, s.Theme)
}

func TestLoadWithoutFiles(t *testing.T) {
	l, _, _ := newTestLoader(t)
	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, ThemeAuto, s.Theme)
	assert.Empty(t, s.PluginPaths)
}

func TestLoadReportsBadFiles(t *testing.T) {
	l, user, _ := newTestLoader(t)
	writeFile(t, filepath.Join(user, "settings.json"), `{"theme": `)
	_, err := l.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings.json")

	writeFile(t, filepath.Join(user, "settings.json"), `{"theme": "neon"}`)
	_, err = l.Load()
	assert.ErrorContains(t, err, "unknown theme")

	writeFile(t, filepath.Join(user, "settings.json"), `{"actionShortcuts": {"a:b": {"x": "hyper+x"}}}`)
	_, err = l.Load()
	assert.ErrorContains(t, err, "actionShortcuts[a:b][x]")
}

func TestShortcuts(t *testing.T) {
	s := NewSettings()
	s.ActionShortcuts["apps:search"] = map[string]string{"open": "ctrl+o", "copy": "alt+c"}

	got, err := s.Shortcuts("apps:search")
	require.NoError(t, err)
	assert.Equal(t, map[string]actionpanel.Shortcut{
		"open": {Key: "o", Kind: actionpanel.KindMain},
		"copy": {Key: "c", Kind: actionpanel.KindAlternative},
	}, got)

	got, err = s.Shortcuts("unknown:entry")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRuntimeEnv(t *testing.T) {
	s := NewSettings()
	s.Env["SHARED"] = "global"
	s.Env["ONLY_GLOBAL"] = "1"
	s.Runtime.Env["SHARED"] = "runtime"

	assert.Equal(t, map[string]string{"SHARED": "runtime", "ONLY_GLOBAL": "1"}, s.RuntimeEnv())
}

func TestSetPluginEnabled(t *testing.T) {
	l, user, _ := newTestLoader(t)
	writeFile(t, filepath.Join(user, "settings.json"), `{"theme": "dark", "enabledPlugins": {"apps": true}}`)

	require.NoError(t, SetPluginEnabled(l, "emoji", false, true))

	s, err := l.LoadFile(filepath.Join(user, "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme, "existing values are kept")
	assert.Equal(t, map[string]bool{"apps": true, "emoji": false}, s.EnabledPlugins)
}

func TestMergeSettingsNil(t *testing.T) {
	s := NewSettings()
	assert.Same(t, s, MergeSettings(nil, s))
	assert.Same(t, s, MergeSettings(s, nil))
}
