// file: internals/features/profiles/sections/reconcile/merge_test.go
package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCacheSectionNewWinsKeyByKey(t *testing.T) {
	old := map[string]any{
		"section_id":    "42",
		"section_title": "Work Experience",
		"note":          "keep me",
		"fields":        []any{map[string]any{"field_label": "Company", "field_value": "Acme"}},
	}
	incoming := map[string]any{
		"section_title": "Career",
	}
	out := MergeCacheSection(old, incoming)

	assert.Equal(t, "Career", out["section_title"])
	assert.Equal(t, "keep me", out["note"])
	assert.Equal(t, "42", out["section_id"], "old section_id survives")
	// fields untouched because the payload carried none
	require.Len(t, out["fields"], 1)
}

func TestMergeCacheSectionFieldsReplaceWholesale(t *testing.T) {
	old := map[string]any{
		"section_id": "42",
		"fields": []any{
			map[string]any{"field_label": "Company", "field_value": "Acme"},
			map[string]any{"field_label": "Position", "field_value": "Engineer"},
		},
	}
	incoming := map[string]any{
		"fields": []any{
			map[string]any{"field_label": "Company", "field_value": "Globex"},
		},
	}
	out := MergeCacheSection(old, incoming)

	fields, ok := out["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1, "new fields replace the old list wholesale")
	assert.Equal(t, "Globex", fields[0].(map[string]any)["field_value"])
}

func TestMergeCacheSectionExplicitIDWins(t *testing.T) {
	old := map[string]any{"section_id": "42"}
	incoming := map[string]any{"section_id": "43"}
	out := MergeCacheSection(old, incoming)
	assert.Equal(t, "43", out["section_id"])
}

func TestMergeCacheSectionNilOldAndFieldsAlwaysPresent(t *testing.T) {
	out := MergeCacheSection(nil, map[string]any{"section_title": "New"})
	assert.Equal(t, "New", out["section_title"])
	fields, ok := out["fields"].([]any)
	require.True(t, ok, "result always carries a fields array")
	assert.Empty(t, fields)
}

func TestMergeCacheSectionDoesNotAliasInputs(t *testing.T) {
	old := map[string]any{
		"section_id": "42",
		"fields":     []any{map[string]any{"field_label": "Company", "field_value": "Acme"}},
	}
	incoming := map[string]any{"section_title": "Career"}

	out := MergeCacheSection(old, incoming)
	out["fields"].([]any)[0].(map[string]any)["field_value"] = "mutated"

	assert.Equal(t, "Acme", old["fields"].([]any)[0].(map[string]any)["field_value"],
		"merge must deep-copy, not alias")
}
