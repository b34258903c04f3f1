package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Loader handles loading and merging settings from multiple sources.
type Loader struct {
	// userDir is the user-level config directory (e.g., ~/.gauntlet)
	userDir string

	// projectDir is the project-level config directory (e.g., .gauntlet)
	projectDir string
}

// NewLoader creates a new settings loader for ~/.gauntlet and .gauntlet.
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		userDir:    filepath.Join(homeDir, ".gauntlet"),
		projectDir: ".gauntlet",
	}
}

// NewLoaderWithOptions creates a loader with custom directories.
func NewLoaderWithOptions(userDir, projectDir string) *Loader {
	return &Loader{
		userDir:    userDir,
		projectDir: projectDir,
	}
}

// Sources returns the settings files in priority order (lowest to highest).
func (l *Loader) Sources() []string {
	return []string{
		filepath.Join(l.userDir, "settings.json"),
		filepath.Join(l.projectDir, "settings.json"),
		filepath.Join(l.projectDir, "settings.local.json"),
	}
}

// Load loads and merges settings from all sources.
// Missing files are skipped; a file that exists but does not parse is an
// error naming the file.
func (l *Loader) Load() (*Settings, error) {
	settings := NewSettings()

	for _, src := range l.Sources() {
		s, err := l.LoadFile(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		settings = MergeSettings(settings, s)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// LoadFile loads settings from a specific file.
func (l *Loader) LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &settings, nil
}

// SaveToProject saves settings to the project-level settings file.
// It merges with existing settings if the file exists.
func (l *Loader) SaveToProject(settings *Settings) error {
	return l.saveToFile(filepath.Join(l.projectDir, "settings.json"), settings)
}

// SaveToUser saves settings to the user-level settings file.
// It merges with existing settings if the file exists.
func (l *Loader) SaveToUser(settings *Settings) error {
	return l.saveToFile(filepath.Join(l.userDir, "settings.json"), settings)
}

// saveToFile saves settings to a specific file, merging with existing content.
func (l *Loader) saveToFile(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var existing *Settings
	if data, err := os.ReadFile(path); err == nil {
		existing = NewSettings()
		if err := json.Unmarshal(data, existing); err != nil {
			existing = nil
		}
	}

	toSave := settings
	if existing != nil {
		toSave = MergeSettings(existing, settings)
	}

	data, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

var (
	cacheMu        sync.Mutex
	loadedSettings *Settings
)

// Load is a convenience function that loads settings using the default loader.
func Load() (*Settings, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if loadedSettings != nil {
		return loadedSettings, nil
	}
	settings, err := NewLoader().Load()
	if err != nil {
		return nil, err
	}
	loadedSettings = settings
	return loadedSettings, nil
}

// SetPluginEnabled records whether a plugin is enabled.
// If userLevel is true, saves to ~/.gauntlet/settings.json, otherwise to .gauntlet/settings.json.
func SetPluginEnabled(l *Loader, pluginID string, enabled, userLevel bool) error {
	settings := &Settings{
		EnabledPlugins: map[string]bool{pluginID: enabled},
	}

	var err error
	if userLevel {
		err = l.SaveToUser(settings)
	} else {
		err = l.SaveToProject(settings)
	}
	if err != nil {
		return err
	}

	// Clear cache so next Load() picks up changes
	cacheMu.Lock()
	loadedSettings = nil
	cacheMu.Unlock()
	return nil
}
