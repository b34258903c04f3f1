package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"
)

// LoadManifest reads and validates a gauntlet.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("invalid manifest %s: unknown key %q", path, undecoded[0].String())
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks versions, entrypoint ids and types, and action shortcuts.
func (m *Manifest) Validate() error {
	if m.Gauntlet.Version != "" {
		if _, err := semver.NewVersion(m.Gauntlet.Version); err != nil {
			return fmt.Errorf("gauntlet.version %q: %w", m.Gauntlet.Version, err)
		}
	}
	if m.Gauntlet.MinVersion != "" {
		if _, err := semver.NewVersion(m.Gauntlet.MinVersion); err != nil {
			return fmt.Errorf("gauntlet.min_version %q: %w", m.Gauntlet.MinVersion, err)
		}
	}

	seen := make(map[string]bool, len(m.Entrypoints))
	for i, ep := range m.Entrypoints {
		if ep.ID == "" {
			return fmt.Errorf("entrypoint[%d]: id is required", i)
		}
		if strings.Contains(ep.ID, ":") {
			return fmt.Errorf("entrypoint %q: id must not contain ':'", ep.ID)
		}
		if seen[ep.ID] {
			return fmt.Errorf("entrypoint %q: duplicate id", ep.ID)
		}
		seen[ep.ID] = true
		if !ep.Type.Valid() {
			return fmt.Errorf("entrypoint %q: unknown type %q", ep.ID, ep.Type)
		}

		actions := make(map[string]bool, len(ep.Actions))
		for _, a := range ep.Actions {
			if a.ID == "" {
				return fmt.Errorf("entrypoint %q: action id is required", ep.ID)
			}
			if actions[a.ID] {
				return fmt.Errorf("entrypoint %q: duplicate action %q", ep.ID, a.ID)
			}
			actions[a.ID] = true
			if a.Shortcut != nil {
				if err := a.Shortcut.Validate(); err != nil {
					return fmt.Errorf("entrypoint %q action %q: %w", ep.ID, a.ID, err)
				}
			}
		}
	}
	return nil
}

// Supports reports whether a host at hostVersion satisfies min_version.
// A nil hostVersion (development build) supports every plugin.
func (m *Manifest) Supports(hostVersion *semver.Version) bool {
	if hostVersion == nil || m.Gauntlet.MinVersion == "" {
		return true
	}
	minVersion, err := semver.NewVersion(m.Gauntlet.MinVersion)
	if err != nil {
		return false
	}
	return !hostVersion.LessThan(minVersion)
}

// LoadPlugin loads a plugin from a directory containing gauntlet.toml.
func LoadPlugin(path string) (*Plugin, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid plugin path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("plugin path not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("plugin path is not a directory: %s", absPath)
	}

	manifest, err := LoadManifest(filepath.Join(absPath, ManifestFile))
	if err != nil {
		return nil, err
	}

	return &Plugin{
		ID:       filepath.Base(absPath),
		Manifest: *manifest,
		Path:     absPath,
	}, nil
}

// Discover expands the glob patterns and returns every matching directory
// that holds a manifest, in pattern order without duplicates.
// "~/" at the start of a pattern is the user's home directory.
func Discover(patterns []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(expandHome(pattern))
		if err != nil {
			return nil, fmt.Errorf("plugin path %q: %w", pattern, err)
		}
		for _, match := range matches {
			abs, err := filepath.Abs(match)
			if err != nil || seen[abs] {
				continue
			}
			if _, err := os.Stat(filepath.Join(abs, ManifestFile)); err != nil {
				continue
			}
			seen[abs] = true
			dirs = append(dirs, abs)
		}
	}
	return dirs, nil
}

func expandHome(pattern string) string {
	if pattern == "~" || strings.HasPrefix(pattern, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(pattern, "~"))
		}
	}
	return pattern
}
