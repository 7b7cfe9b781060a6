// Package keypath converts between nested settings maps and flat keys joined
// by a delimiter, as used by line-oriented settings formats.
package keypath

import (
	"strings"

	"github.com/spf13/cast"
)

// Flatten returns the leaves of m keyed by their delimited path.
func Flatten(m map[string]any, delimiter string) map[string]any {
	return flattenInto(make(map[string]any), m, "", delimiter)
}

func flattenInto(flat, m map[string]any, prefix, delimiter string) map[string]any {
	if prefix != "" {
		prefix += delimiter
	}

	for k, val := range m {
		key := prefix + k
		switch val := val.(type) {
		case map[string]any:
			flattenInto(flat, val, key, delimiter)
		case map[any]any:
			flattenInto(flat, cast.ToStringMap(val), key, delimiter)
		default:
			flat[key] = val
		}
	}

	return flat
}

// Set stores value in m under the delimited key, creating the intermediate
// maps. A leaf found where a map is needed is replaced.
func Set(m map[string]any, key, delimiter string, value any) {
	path := strings.Split(key, delimiter)

	Deep(m, path[:len(path)-1])[path[len(path)-1]] = value
}

// Deep returns the map stored at path inside m, creating missing levels.
func Deep(m map[string]any, path []string) map[string]any {
	for _, k := range path {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[k] = next
		}
		m = next
	}

	return m
}

// String renders a leaf for formats that only store text.
// Lists are joined with commas.
func String(v any) string {
	switch v := v.(type) {
	case []any, []string:
		return strings.Join(cast.ToStringSlice(v), ",")
	default:
		return cast.ToString(v)
	}
}
