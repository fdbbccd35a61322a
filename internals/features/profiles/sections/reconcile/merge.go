// file: internals/features/profiles/sections/reconcile/merge.go
package reconcile

import "encoding/json"

// MergeCacheSection merges a section-edit payload over the existing
// cache entry for one section key. New values win key-by-key;
// section_id from the old entry survives unless the payload explicitly
// replaces it; a "fields" array in the payload replaces the old fields
// wholesale, otherwise the old fields stay. The result always has a
// fields array, never nil, so rendering can range over it blindly.
func MergeCacheSection(old, incoming map[string]any) map[string]any {
	out := deepCopyMap(old)
	if out == nil {
		out = map[string]any{}
	}

	for k, v := range incoming {
		if k == "fields" {
			continue // handled below
		}
		out[k] = deepCopyValue(v)
	}

	// old section_id survives unless the payload set one
	if _, ok := incoming["section_id"]; !ok {
		if oldID, ok := old["section_id"]; ok {
			out["section_id"] = oldID
		}
	}

	if nf, ok := incoming["fields"].([]any); ok {
		out["fields"] = deepCopyValue(nf)
	}
	if _, ok := out["fields"].([]any); !ok {
		out["fields"] = []any{}
	}
	return out
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = deepCopyValue(el)
		}
		return out
	case json.RawMessage:
		cp := make(json.RawMessage, len(t))
		copy(cp, t)
		return cp
	default:
		return t
	}
}
