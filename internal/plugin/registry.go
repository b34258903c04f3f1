package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
	"github.com/yanmxa/gauntlet/internal/config"
	"github.com/yanmxa/gauntlet/internal/log"
)

// Registry manages all loaded plugins.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin // key: plugin id
	errors  map[string]error   // key: plugin directory
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]*Plugin),
		errors:  make(map[string]error),
	}
}

// Load discovers plugins from settings.PluginPaths and replaces the registry
// contents. A plugin that fails to load, or needs a newer host than
// hostVersion, is recorded in Errors and skipped. Plugins are enabled unless
// settings.EnabledPlugins says otherwise.
func (r *Registry) Load(settings *config.Settings, hostVersion *semver.Version) error {
	dirs, err := Discover(settings.PluginPaths)
	if err != nil {
		return err
	}

	plugins := make(map[string]*Plugin)
	loadErrors := make(map[string]error)
	for _, dir := range dirs {
		p, err := LoadPlugin(dir)
		if err != nil {
			log.Logger().Warn("Skipping plugin", zap.String("dir", dir), zap.Error(err))
			loadErrors[dir] = err
			continue
		}
		if !p.Manifest.Supports(hostVersion) {
			err := fmt.Errorf("plugin %s requires gauntlet %s", p.ID, p.Manifest.Gauntlet.MinVersion)
			log.Logger().Warn("Skipping plugin", zap.String("dir", dir), zap.Error(err))
			loadErrors[dir] = err
			continue
		}
		if _, dup := plugins[p.ID]; dup {
			loadErrors[dir] = fmt.Errorf("plugin %s already loaded from another path", p.ID)
			continue
		}
		p.Enabled = true
		if enabled, ok := settings.EnabledPlugins[p.ID]; ok {
			p.Enabled = enabled
		}
		plugins[p.ID] = p
	}

	r.mu.Lock()
	r.plugins = plugins
	r.errors = loadErrors
	r.mu.Unlock()

	log.Logger().Debug("Plugins loaded", zap.Int("count", len(plugins)), zap.Int("errors", len(loadErrors)))
	return nil
}

// Register adds a plugin to the registry.
func (r *Registry) Register(p *Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[p.ID] = p
}

// Get returns a plugin by id.
func (r *Registry) Get(id string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	return p, ok
}

// List returns all plugins sorted by id.
func (r *Registry) List() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugins := make([]*Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		plugins = append(plugins, p)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].ID < plugins[j].ID
	})
	return plugins
}

// Errors returns the load errors of the last Load, keyed by directory.
func (r *Registry) Errors() map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]error, len(r.errors))
	for k, v := range r.errors {
		out[k] = v
	}
	return out
}

// Count returns the number of loaded plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// Resolve returns the enabled plugin and entrypoint named by ref.
func (r *Registry) Resolve(ref EntrypointRef) (*Plugin, *Entrypoint, error) {
	p, ok := r.Get(ref.PluginID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrPluginNotFound, ref.PluginID)
	}
	if !p.Enabled {
		return nil, nil, fmt.Errorf("%w: %s", ErrPluginDisabled, ref.PluginID)
	}
	ep, ok := p.Entrypoint(ref.EntrypointID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrEntrypointNotFound, ref)
	}
	return p, ep, nil
}

// ShortcutsFor returns the shortcut map of an entrypoint keyed by action id:
// the manifest defaults overlaid with settings.actionShortcuts[ref].
func ShortcutsFor(ep *Entrypoint, ref EntrypointRef, settings *config.Settings) (map[string]actionpanel.Shortcut, error) {
	out := make(map[string]actionpanel.Shortcut, len(ep.Actions))
	for _, a := range ep.Actions {
		if a.Shortcut != nil {
			out[a.ID] = *a.Shortcut
		}
	}
	if settings == nil {
		return out, nil
	}

	overrides, err := settings.Shortcuts(ref.String())
	if err != nil {
		return nil, err
	}
	for id, sc := range overrides {
		out[id] = sc
	}
	return out, nil
}
