// file: internals/features/profiles/sections/service/template_catalog_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilku_backend/internals/features/profiles/sections/reconcile"
)

func TestFindTemplate(t *testing.T) {
	tpl := FindTemplate("education")
	require.NotNil(t, tpl)
	assert.Equal(t, "Education", tpl.Title)

	assert.Nil(t, FindTemplate("unknown"))
	assert.Nil(t, FindTemplate(""))
}

func TestTemplateCatalogKeysAreValidSlugs(t *testing.T) {
	seen := map[string]bool{}
	for _, tpl := range TemplateCatalog() {
		assert.NotEmpty(t, tpl.Title)
		assert.False(t, seen[tpl.SectionKey], "duplicate template key %q", tpl.SectionKey)
		seen[tpl.SectionKey] = true
		for _, f := range tpl.Fields {
			assert.NotEmpty(t, f.FieldKey, "template %s", tpl.SectionKey)
			assert.NotEmpty(t, f.FieldLabel, "template %s", tpl.SectionKey)
		}
	}
}

func TestMaterializeTemplate(t *testing.T) {
	sec := MaterializeTemplate("education")
	require.NotNil(t, sec)

	assert.Equal(t, "education", sec.Key)
	assert.Equal(t, "Education", sec.Title)
	assert.False(t, reconcile.IsPersistedID(sec.ID), "draft section id must be a placeholder")
	require.Len(t, sec.Fields, 3)
	for _, f := range sec.Fields {
		assert.Equal(t, "", f.Value, "template fields start empty")
		assert.False(t, reconcile.IsPersistedID(f.ID))
	}

	// two drafts from the same template never share ids
	again := MaterializeTemplate("education")
	assert.NotEqual(t, sec.ID, again.ID)

	assert.Nil(t, MaterializeTemplate("unknown"))
}
