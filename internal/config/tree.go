// internal/config/tree.go
//
// Nested view of a parsed document.
//
// Lookups walk the tree one dotted segment at a time, so a mapping key that
// itself contains a dot ("a.b": 1) is only reachable as a value of its
// parent, never through the path "a.b".
package config

import (
	"fmt"
	"strings"
)

// clone deep-copies a decoded YAML node.  Mappings with non-string keys are
// re-keyed with fmt.Sprint.
func clone(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			out[k] = clone(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			out[fmt.Sprint(k)] = clone(e)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = clone(e)
		}
		return out
	default:
		return v
	}
}

// walk follows key segment by segment.  Hitting a non-mapping before the
// last segment counts as absent.
func walk(root map[string]any, key string) (any, bool) {
	var cur any = root
	for _, seg := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// set stores v at key, creating or replacing intermediate mappings.
func set(root map[string]any, key string, v any) {
	segs := strings.Split(key, ".")
	m := root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := m[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[seg] = next
		}
		m = next
	}
	m[segs[len(segs)-1]] = v
}
