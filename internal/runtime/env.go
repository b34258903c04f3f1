package runtime

import (
	"os"
	"sort"
	"strings"
)

// ExpandEnv expands ${VAR} and ${VAR:-default} references in s.
func ExpandEnv(s string) string {
	return os.Expand(s, func(ref string) string {
		if name, def, ok := strings.Cut(ref, ":-"); ok {
			if val, set := os.LookupEnv(name); set {
				return val
			}
			return def
		}
		return os.Getenv(ref)
	})
}

// ExpandEnvSlice expands environment variables in each string of a slice.
func ExpandEnvSlice(s []string) []string {
	if s == nil {
		return nil
	}
	result := make([]string, len(s))
	for i, v := range s {
		result[i] = ExpandEnv(v)
	}
	return result
}

// BuildEnv returns the current environment overlaid with extra, each value
// of extra expanded first. The result is sorted for stable output.
func BuildEnv(extra map[string]string) []string {
	env := os.Environ()
	if len(extra) == 0 {
		return env
	}

	merged := make(map[string]string, len(env)+len(extra))
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok {
			merged[k] = v
		}
	}
	for k, v := range extra {
		merged[k] = ExpandEnv(v)
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+merged[k])
	}
	return result
}
