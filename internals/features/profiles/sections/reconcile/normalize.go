// file: internals/features/profiles/sections/reconcile/normalize.go
package reconcile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"profilku_backend/internals/features/profiles/sections/model"
)

// Normalize turns the denormalized profile_sections cache into the
// editable Section list. The cache has accumulated three shapes over
// time, keyed by section name:
//
//  1. canonical: {"section_id": ..., "fields": [{field_id, field_label,
//     field_value, field_type}, ...]}
//  2. a bare array of field-like objects (elements may or may not carry
//     a field_id)
//  3. a bare object of scalar key→value pairs
//
// Database field ids are preserved exactly, numeric-looking legacy ids
// included, so a later save updates instead of duplicating. Synthesized
// ids use "{sectionName}-field-{index}" and classify as placeholders.
// The result is deterministic (sections sorted by declared order, then
// name) and idempotent: normalizing ToCacheMap(Normalize(S)) equals
// Normalize(S).
func Normalize(raw map[string]any) []Section {
	if len(raw) == 0 {
		return []Section{}
	}

	type keyed struct {
		name  string
		order int
		has   bool
		sec   Section
	}
	out := make([]keyed, 0, len(raw))

	for name, v := range raw {
		k := keyed{name: name}
		switch t := v.(type) {
		case map[string]any:
			if isCanonical(t) {
				k.sec = normalizeCanonical(name, t)
				if o, ok := intValue(t["display_order"]); ok {
					k.order, k.has = o, true
				}
			} else {
				k.sec = normalizeScalarMap(name, t)
			}
		case []any:
			k.sec = normalizeArray(name, t)
		default:
			// unknown scalar at the top level; treat as a one-field section
			k.sec = normalizeScalarMap(name, map[string]any{name: v})
		}
		out = append(out, k)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].has != out[j].has {
			return out[i].has // explicitly ordered entries first
		}
		if out[i].has && out[i].order != out[j].order {
			return out[i].order < out[j].order
		}
		return out[i].name < out[j].name
	})

	sections := make([]Section, 0, len(out))
	for _, k := range out {
		sections = append(sections, k.sec)
	}
	return sections
}

// NormalizeJSON is Normalize over the raw jsonb bytes of the cache column.
func NormalizeJSON(data []byte) ([]Section, error) {
	if len(data) == 0 {
		return []Section{}, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("profile_sections cache is not an object: %w", err)
	}
	return Normalize(raw), nil
}

func isCanonical(m map[string]any) bool {
	if _, ok := m["fields"]; ok {
		return true
	}
	if _, ok := m["section_id"]; ok {
		return true
	}
	return false
}

func normalizeCanonical(name string, m map[string]any) Section {
	sec := Section{
		ID:    stringValue(m["section_id"]),
		Key:   stringValue(m["section_key"]),
		Title: stringValue(m["section_title"]),
	}
	if sec.ID == "" {
		sec.ID = name
	}
	if sec.Key == "" {
		sec.Key = name
	}
	if sec.Title == "" {
		sec.Title = name
	}

	rawFields, _ := m["fields"].([]any)
	sec.Fields = make([]Field, 0, len(rawFields))
	for i, rf := range rawFields {
		fm, ok := rf.(map[string]any)
		if !ok {
			continue
		}
		f := Field{
			ID:    firstString(fm, "field_id", "id"),
			Label: firstString(fm, "field_label", "label"),
			Value: firstString(fm, "field_value", "value"),
			Type:  string(model.ParseFieldType(firstString(fm, "field_type", "type"))),
		}
		if f.ID == "" {
			f.ID = syntheticFieldID(name, i)
		}
		if f.Label == "" {
			f.Label = firstString(fm, "field_key", "key")
		}
		sec.Fields = append(sec.Fields, f)
	}
	return sec
}

func normalizeArray(name string, arr []any) Section {
	sec := Section{ID: name, Key: name, Title: name, Fields: make([]Field, 0, len(arr))}
	for i, el := range arr {
		switch fm := el.(type) {
		case map[string]any:
			f := Field{
				ID:    firstString(fm, "field_id", "id"),
				Label: firstString(fm, "field_label", "label"),
				Value: firstString(fm, "field_value", "value"),
				Type:  string(model.ParseFieldType(firstString(fm, "field_type", "type"))),
			}
			if f.ID == "" {
				f.ID = syntheticFieldID(name, i)
			}
			if f.Label == "" {
				f.Label = firstString(fm, "field_key", "key")
			}
			sec.Fields = append(sec.Fields, f)
		default:
			sec.Fields = append(sec.Fields, Field{
				ID:    syntheticFieldID(name, i),
				Label: name,
				Value: scalarToString(el),
				Type:  string(model.FieldTypeText),
			})
		}
	}
	return sec
}

// oldest shape: one synthetic text field per property, key order sorted
// so the output is stable.
func normalizeScalarMap(name string, m map[string]any) Section {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sec := Section{ID: name, Key: name, Title: name, Fields: make([]Field, 0, len(keys))}
	for i, k := range keys {
		sec.Fields = append(sec.Fields, Field{
			ID:    syntheticFieldID(name, i),
			Label: k,
			Value: scalarToString(m[k]),
			Type:  string(model.FieldTypeText),
		})
	}
	return sec
}

func syntheticFieldID(sectionName string, index int) string {
	return fmt.Sprintf("%s-field-%d", sectionName, index)
}

/* =========================
   Cache projection
   ========================= */

// ToCacheMap writes sections back in the canonical cache shape, keyed by
// section key (suffixed when a profile holds duplicate keys, so no entry
// silently overwrites another). This is the only writer of the cache
// column; Normalize(ToCacheMap(s)) == s.
func ToCacheMap(sections []Section) map[string]any {
	out := make(map[string]any, len(sections))
	for i, sec := range sections {
		fields := make([]any, 0, len(sec.Fields))
		for j, f := range sec.Fields {
			fields = append(fields, map[string]any{
				"field_id":      f.ID,
				"field_label":   f.Label,
				"field_value":   f.Value,
				"field_type":    f.Type,
				"display_order": j,
			})
		}
		key := sec.Key
		if key == "" {
			key = sec.ID
		}
		for {
			if _, taken := out[key]; !taken {
				break
			}
			key = key + "_" + strconv.Itoa(i+1)
		}
		out[key] = map[string]any{
			"section_id":    sec.ID,
			"section_key":   sec.Key,
			"section_title": sec.Title,
			"display_order": i,
			"fields":        fields,
		}
	}
	return out
}

/* =========================
   Loose value coercion
   ========================= */

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := scalarToString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

// scalarToString stringifies the loose values legacy caches carry.
// Numeric field ids must round-trip without a decimal point.
func scalarToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
