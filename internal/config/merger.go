package config

// MergeSettings merges two Settings objects.
// Values from 'overlay' override values in 'base'.
// Plugin paths are appended (deduplicated); maps are merged key-wise.
func MergeSettings(base, overlay *Settings) *Settings {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	result := NewSettings()

	result.Runtime = mergeRuntimeSettings(base.Runtime, overlay.Runtime)
	result.PluginPaths = mergeStringSlices(base.PluginPaths, overlay.PluginPaths)
	result.EnabledPlugins = mergeBoolMaps(base.EnabledPlugins, overlay.EnabledPlugins)
	result.ActionShortcuts = mergeShortcutMaps(base.ActionShortcuts, overlay.ActionShortcuts)
	result.Env = mergeStringMaps(base.Env, overlay.Env)

	// Theme (overlay wins if set)
	result.Theme = overlayString(base.Theme, overlay.Theme)

	return result
}

// mergeRuntimeSettings replaces command and args together when overlay sets
// a command.
func mergeRuntimeSettings(base, overlay RuntimeSettings) RuntimeSettings {
	result := base
	if overlay.Command != "" {
		result.Command = overlay.Command
		result.Args = append([]string(nil), overlay.Args...)
	}
	result.Dir = overlayString(base.Dir, overlay.Dir)
	result.Env = mergeStringMaps(base.Env, overlay.Env)
	return result
}

func overlayString(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

// mergeStringSlices merges two string slices, removing duplicates.
func mergeStringSlices(base, overlay []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, s := range base {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range overlay {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	return result
}

// mergeShortcutMaps merges per-entrypoint shortcut maps key-wise.
func mergeShortcutMaps(base, overlay map[string]map[string]string) map[string]map[string]string {
	result := make(map[string]map[string]string)

	for ref, actions := range base {
		result[ref] = mergeStringMaps(nil, actions)
	}
	for ref, actions := range overlay {
		result[ref] = mergeStringMaps(result[ref], actions)
	}

	return result
}

// mergeStringMaps merges two map[string]string.
func mergeStringMaps(base, overlay map[string]string) map[string]string {
	result := make(map[string]string)

	for k, v := range base {
		result[k] = v
	}
	for k, v := range overlay {
		result[k] = v
	}

	return result
}

// mergeBoolMaps merges two map[string]bool.
func mergeBoolMaps(base, overlay map[string]bool) map[string]bool {
	result := make(map[string]bool)

	for k, v := range base {
		result[k] = v
	}
	for k, v := range overlay {
		result[k] = v
	}

	return result
}
