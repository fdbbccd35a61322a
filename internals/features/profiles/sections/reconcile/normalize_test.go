// file: internals/features/profiles/sections/reconcile/normalize_test.go
package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rowFieldID = "0e4f3bcb-8a53-4a2d-9f1e-2b7c6d5e4f3a"

func canonicalCache() map[string]any {
	return map[string]any{
		"work_experience": map[string]any{
			"section_id":    "2b7c6d5e-4f3a-4bcb-8a53-0e4f3bcb8a53",
			"section_key":   "work_experience",
			"section_title": "Work Experience",
			"display_order": float64(0),
			"fields": []any{
				map[string]any{
					"field_id":    rowFieldID,
					"field_label": "Company",
					"field_value": "Acme",
					"field_type":  "text",
				},
				map[string]any{
					"field_id":    "",
					"field_label": "Position",
					"field_value": "Engineer",
					"field_type":  "text",
				},
			},
		},
	}
}

func TestNormalizeCanonicalShape(t *testing.T) {
	secs := Normalize(canonicalCache())
	require.Len(t, secs, 1)

	sec := secs[0]
	assert.Equal(t, "2b7c6d5e-4f3a-4bcb-8a53-0e4f3bcb8a53", sec.ID)
	assert.Equal(t, "work_experience", sec.Key)
	assert.Equal(t, "Work Experience", sec.Title)
	require.Len(t, sec.Fields, 2)

	// database id preserved exactly
	assert.Equal(t, rowFieldID, sec.Fields[0].ID)
	assert.Equal(t, "Acme", sec.Fields[0].Value)

	// missing id gets the synthetic shape and classifies temporary
	assert.Equal(t, "work_experience-field-1", sec.Fields[1].ID)
	assert.False(t, IsPersistedID(sec.Fields[1].ID))
}

func TestNormalizeBareArrayShape(t *testing.T) {
	raw := map[string]any{
		"links": []any{
			map[string]any{"field_label": "GitHub", "field_value": "https://github.com/sari"},
			map[string]any{"field_id": "42", "field_label": "Blog", "field_value": "https://sari.dev"},
			"just a string",
		},
	}
	secs := Normalize(raw)
	require.Len(t, secs, 1)

	sec := secs[0]
	assert.Equal(t, "links", sec.ID)
	assert.Equal(t, "links", sec.Key)
	require.Len(t, sec.Fields, 3)

	assert.Equal(t, "links-field-0", sec.Fields[0].ID)
	// numeric legacy id survives and classifies as a row id
	assert.Equal(t, "42", sec.Fields[1].ID)
	assert.True(t, IsPersistedID(sec.Fields[1].ID))
	// bare scalar element becomes a text field
	assert.Equal(t, "just a string", sec.Fields[2].Value)
	assert.Equal(t, "text", sec.Fields[2].Type)
}

func TestNormalizeScalarMapShape(t *testing.T) {
	raw := map[string]any{
		"contact": map[string]any{
			"phone": "+62 812",
			"email": "sari@example.com",
			"age":   float64(30),
		},
	}
	secs := Normalize(raw)
	require.Len(t, secs, 1)

	sec := secs[0]
	require.Len(t, sec.Fields, 3)
	// keys sorted so the output is stable run to run
	assert.Equal(t, "age", sec.Fields[0].Label)
	assert.Equal(t, "30", sec.Fields[0].Value)
	assert.Equal(t, "email", sec.Fields[1].Label)
	assert.Equal(t, "phone", sec.Fields[2].Label)
	for i, f := range sec.Fields {
		assert.Equal(t, "text", f.Type)
		assert.False(t, IsPersistedID(f.ID), "field %d", i)
	}
}

func TestNormalizeMixedShapesOrdering(t *testing.T) {
	raw := canonicalCache()
	raw["links"] = []any{map[string]any{"field_label": "GitHub", "field_value": "x"}}
	raw["contact"] = map[string]any{"email": "sari@example.com"}

	secs := Normalize(raw)
	require.Len(t, secs, 3)
	// the explicitly ordered canonical entry comes first, the rest by name
	assert.Equal(t, "work_experience", secs[0].Key)
	assert.Equal(t, "contact", secs[1].Key)
	assert.Equal(t, "links", secs[2].Key)
}

func TestNormalizeDeterministic(t *testing.T) {
	raw := canonicalCache()
	raw["contact"] = map[string]any{"b": "2", "a": "1", "c": "3"}

	first := Normalize(raw)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Normalize(raw))
	}
}

// Normalizing a cache written by ToCacheMap yields the same sections:
// a load/save cycle with no edits is a no-op.
func TestNormalizeIdempotentThroughCacheRoundTrip(t *testing.T) {
	for name, raw := range map[string]map[string]any{
		"canonical":  canonicalCache(),
		"bare array": {"links": []any{map[string]any{"field_label": "GitHub", "field_value": "x"}}},
		"scalar map": {"contact": map[string]any{"email": "sari@example.com", "phone": "+62"}},
	} {
		t.Run(name, func(t *testing.T) {
			once := Normalize(raw)

			// run the projection through real JSON so float/int coercion
			// matches what the jsonb column sees
			data, err := json.Marshal(ToCacheMap(once))
			require.NoError(t, err)
			again, err := NormalizeJSON(data)
			require.NoError(t, err)

			assert.Equal(t, once, again)
		})
	}
}

func TestNormalizeEmptyAndInvalid(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize(map[string]any{}))

	secs, err := NormalizeJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, secs)

	_, err = NormalizeJSON([]byte(`[1,2,3]`))
	assert.Error(t, err)
}

func TestNormalizePreservesEmptyValues(t *testing.T) {
	raw := map[string]any{
		"work_experience": map[string]any{
			"section_id": "42",
			"fields": []any{
				map[string]any{"field_id": rowFieldID, "field_label": "End Date", "field_value": ""},
			},
		},
	}
	secs := Normalize(raw)
	require.Len(t, secs, 1)
	require.Len(t, secs[0].Fields, 1)
	assert.Equal(t, "", secs[0].Fields[0].Value)

	patches := ToPersistableFields(secs[0])
	require.Len(t, patches, 1)
	assert.Equal(t, "", patches[0].FieldValue, "cleared value must persist as blank")
	assert.Equal(t, rowFieldID, patches[0].ID)
}

func TestToCacheMapDuplicateKeysDoNotOverwrite(t *testing.T) {
	secs := []Section{
		{ID: "a", Key: "work_experience", Title: "Work Experience", Fields: []Field{}},
		{ID: "b", Key: "work_experience", Title: "Work Experience 2", Fields: []Field{}},
	}
	out := ToCacheMap(secs)
	assert.Len(t, out, 2)
}
