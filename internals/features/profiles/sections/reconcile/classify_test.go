// file: internals/features/profiles/sections/reconcile/classify_test.go
package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyID(t *testing.T) {
	cases := []struct {
		name string
		id   string
		want IDClass
	}{
		{"uuid v4", "0e4f3bcb-8a53-4a2d-9f1e-2b7c6d5e4f3a", IDExisting},
		{"uuid v4 uppercase", "0E4F3BCB-8A53-4A2D-9F1E-2B7C6D5E4F3A", IDExisting},
		{"numeric legacy id", "12345", IDExisting},
		{"single digit", "7", IDExisting},
		{"empty", "", IDTemporary},
		{"whitespace only", "   ", IDTemporary},
		{"composite placeholder", "section-1724800000000-0e4f3bcb-8a53-4a2d-9f1e-2b7c6d5e4f3a", IDTemporary},
		{"hyphenated over 30 chars", "work-experience-field-1724800000000", IDTemporary},
		{"short hyphenated", "abc-def", IDTemporary},
		{"synthetic field id", "skills-field-0", IDTemporary},
		{"uuid v1 is not a row id", "0e4f3bcb-8a53-1a2d-9f1e-2b7c6d5e4f3a", IDTemporary},
		{"almost uuid", "0e4f3bcb-8a53-4a2d-9f1e-2b7c6d5e4f3", IDTemporary},
		{"random word", "hello", IDTemporary},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyID(tc.id))
		})
	}
}

// A 36-char UUID v4 contains hyphens and is longer than 30 chars, so it
// also matches the placeholder shape; the row-id check must win.
func TestClassifyIDUUIDBeatsPlaceholderShape(t *testing.T) {
	id := "2b7c6d5e-4f3a-4bcb-8a53-0e4f3bcb8a53"
	assert.Len(t, id, 36)
	assert.True(t, IsPersistedID(id))
}

func TestNewPlaceholderIDClassifiesTemporary(t *testing.T) {
	for _, prefix := range []string{"section", "field"} {
		id := NewPlaceholderID(prefix)
		assert.Equal(t, IDTemporary, ClassifyID(id), "id %q", id)
		assert.Greater(t, len(id), 30)
	}
}
