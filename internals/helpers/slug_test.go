// file: internals/helpers/slug_test.go
package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionKey(t *testing.T) {
	cases := map[string]string{
		"Work Experience":       "work_experience",
		"  Work   Experience  ": "work_experience",
		"Talks & Conferences":   "talks_conferences",
		"C++ / Go":              "c_go",
		"2024 Goals":            "2024_goals",
		"___":                   "section",
		"":                      "section",
		"ALL CAPS":              "all_caps",
	}
	for in, want := range cases {
		assert.Equal(t, want, SectionKey(in), "input %q", in)
	}
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "start_date", FieldKey("Start Date"))
	assert.Equal(t, "field", FieldKey(""))
	assert.Equal(t, "field", FieldKey("   "))
}

func TestDisambiguateTitle(t *testing.T) {
	assert.Equal(t, "Work Experience", DisambiguateTitle("Work Experience", 1))
	assert.Equal(t, "Work Experience 2", DisambiguateTitle("Work Experience", 2))
	assert.Equal(t, "Work Experience 5", DisambiguateTitle("Work Experience ", 5))
	assert.Equal(t, "Skills", DisambiguateTitle("Skills", 0))
}
