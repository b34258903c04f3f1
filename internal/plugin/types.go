// Package plugin provides plugin discovery and manifests for Gauntlet.
// A plugin is a directory holding a gauntlet.toml manifest that declares
// entrypoints and the actions each entrypoint offers.
package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
)

// ManifestFile is the plugin manifest filename.
const ManifestFile = "gauntlet.toml"

var (
	ErrPluginNotFound     = errors.New("plugin not found")
	ErrEntrypointNotFound = errors.New("entrypoint not found")
	ErrPluginDisabled     = errors.New("plugin disabled")
)

// EntrypointType is the kind of an entrypoint.
type EntrypointType string

const (
	EntrypointView       EntrypointType = "view"
	EntrypointCommand    EntrypointType = "command"
	EntrypointInlineView EntrypointType = "inline-view"
	EntrypointGenerator  EntrypointType = "entrypoint-generator"
)

// Valid reports whether t is a known entrypoint type.
func (t EntrypointType) Valid() bool {
	switch t {
	case EntrypointView, EntrypointCommand, EntrypointInlineView, EntrypointGenerator:
		return true
	}
	return false
}

// HasView reports whether the entrypoint renders widgets.
func (t EntrypointType) HasView() bool {
	return t == EntrypointView || t == EntrypointInlineView
}

// Manifest represents plugin metadata from gauntlet.toml.
type Manifest struct {
	Gauntlet    Metadata     `toml:"gauntlet"`
	Entrypoints []Entrypoint `toml:"entrypoint"`
}

// Metadata is the [gauntlet] table.
type Metadata struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
	MinVersion  string `toml:"min_version"`
}

// Entrypoint is one [[entrypoint]] table.
type Entrypoint struct {
	ID          string         `toml:"id"`
	Name        string         `toml:"name"`
	Path        string         `toml:"path"`
	Type        EntrypointType `toml:"type"`
	Description string         `toml:"description"`
	Actions     []ActionDecl   `toml:"actions"`
}

// ActionDecl declares an action of an entrypoint and its default shortcut.
type ActionDecl struct {
	ID          string                `toml:"id"`
	Description string                `toml:"description"`
	Shortcut    *actionpanel.Shortcut `toml:"shortcut"`
}

// Plugin represents a loaded plugin.
type Plugin struct {
	// ID is the plugin directory name; it prefixes entrypoint refs
	ID string

	// Manifest contains plugin metadata
	Manifest Manifest

	// Path is the absolute path to the plugin root directory
	Path string

	// Enabled indicates if this plugin is currently enabled
	Enabled bool
}

// Name returns the display name, preferring the manifest name.
func (p *Plugin) Name() string {
	if p.Manifest.Gauntlet.Name != "" {
		return p.Manifest.Gauntlet.Name
	}
	return p.ID
}

// Entrypoint returns the entrypoint with the given id.
func (p *Plugin) Entrypoint(id string) (*Entrypoint, bool) {
	for i := range p.Manifest.Entrypoints {
		if p.Manifest.Entrypoints[i].ID == id {
			return &p.Manifest.Entrypoints[i], true
		}
	}
	return nil, false
}

// EntrypointRef identifies an entrypoint as "plugin:entrypoint".
type EntrypointRef struct {
	PluginID     string
	EntrypointID string
}

// ParseEntrypointRef parses "plugin:entrypoint".
func ParseEntrypointRef(s string) (EntrypointRef, error) {
	pluginID, entrypointID, ok := strings.Cut(s, ":")
	if !ok || pluginID == "" || entrypointID == "" {
		return EntrypointRef{}, fmt.Errorf("invalid entrypoint %q: want <plugin>:<entrypoint>", s)
	}
	return EntrypointRef{PluginID: pluginID, EntrypointID: entrypointID}, nil
}

// String returns the "plugin:entrypoint" form.
func (r EntrypointRef) String() string {
	return r.PluginID + ":" + r.EntrypointID
}
