// Package config provides multi-level settings management for Gauntlet.
// Settings are loaded from multiple sources with the following priority (lowest to highest):
//  1. ~/.gauntlet/settings.json (user level)
//  2. .gauntlet/settings.json (project level)
//  3. .gauntlet/settings.local.json (local level, not committed)
package config

import (
	"fmt"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
)

// Settings represents the complete Gauntlet configuration.
type Settings struct {
	// Runtime is how the plugin runtime process is launched
	Runtime RuntimeSettings `json:"runtime,omitempty"`

	// PluginPaths are glob patterns of plugin directories (e.g., "~/plugins/*")
	PluginPaths []string `json:"pluginPaths,omitempty"`

	// EnabledPlugins defines which plugins are enabled, keyed by plugin id
	EnabledPlugins map[string]bool `json:"enabledPlugins,omitempty"`

	// ActionShortcuts overrides action shortcuts.
	// Outer key is "plugin:entrypoint", inner key is the action id,
	// value is "ctrl+<key>" or "alt+<key>".
	ActionShortcuts map[string]map[string]string `json:"actionShortcuts,omitempty"`

	// Theme is "auto", "dark" or "light"
	Theme string `json:"theme,omitempty"`

	// Env defines environment variables passed to the plugin runtime
	Env map[string]string `json:"env,omitempty"`
}

// RuntimeSettings configures the plugin runtime process.
type RuntimeSettings struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Dir     string            `json:"dir,omitempty"`
}

// Theme names.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// NewSettings creates a new Settings instance with default values
func NewSettings() *Settings {
	return &Settings{
		Runtime: RuntimeSettings{
			Env: make(map[string]string),
		},
		EnabledPlugins:  make(map[string]bool),
		ActionShortcuts: make(map[string]map[string]string),
		Theme:           ThemeAuto,
		Env:             make(map[string]string),
	}
}

// RuntimeEnv returns the environment for the plugin runtime: Env overlaid
// with Runtime.Env.
func (s *Settings) RuntimeEnv() map[string]string {
	return mergeStringMaps(s.Env, s.Runtime.Env)
}

// Shortcuts returns the parsed shortcut overrides of one entrypoint.
func (s *Settings) Shortcuts(entrypointRef string) (map[string]actionpanel.Shortcut, error) {
	raw := s.ActionShortcuts[entrypointRef]
	out := make(map[string]actionpanel.Shortcut, len(raw))
	for actionID, value := range raw {
		sc, err := actionpanel.ParseShortcut(value)
		if err != nil {
			return nil, fmt.Errorf("actionShortcuts[%s][%s]: %w", entrypointRef, actionID, err)
		}
		out[actionID] = sc
	}
	return out, nil
}

// Validate checks values that cannot be checked by JSON decoding.
func (s *Settings) Validate() error {
	switch s.Theme {
	case "", ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	for ref := range s.ActionShortcuts {
		if _, err := s.Shortcuts(ref); err != nil {
			return err
		}
	}
	return nil
}
