// file: internals/features/profiles/sections/reconcile/mutations.go
package reconcile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"profilku_backend/internals/features/profiles/sections/model"
	helper "profilku_backend/internals/helpers"
)

// NewPlaceholderID builds a client-style composite id. Hyphenated and
// well past 30 chars, so ClassifyID always reads it as temporary.
func NewPlaceholderID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString())
}

/* =========================
   Section mutations
   ========================= */

// AddSection appends an empty editable section.
func AddSection(sections []Section, title string) []Section {
	return append(sections, Section{
		ID:     NewPlaceholderID("section"),
		Key:    helper.SectionKey(title),
		Title:  title,
		Fields: []Field{},
	})
}

// AddMaterializedSection appends a pre-built draft (template output).
func AddMaterializedSection(sections []Section, sec Section) []Section {
	return append(sections, sec)
}

func RemoveSection(sections []Section, sectionID string) []Section {
	out := sections[:0]
	for _, s := range sections {
		if s.ID != sectionID {
			out = append(out, s)
		}
	}
	return out
}

func RenameSection(sections []Section, sectionID, title string) []Section {
	for i := range sections {
		if sections[i].ID == sectionID {
			sections[i].Title = title
			sections[i].Key = helper.SectionKey(title)
		}
	}
	return sections
}

// MoveSectionUp swaps with the previous section; no-op at the top.
func MoveSectionUp(sections []Section, sectionID string) []Section {
	for i := range sections {
		if sections[i].ID == sectionID {
			if i > 0 {
				sections[i-1], sections[i] = sections[i], sections[i-1]
			}
			break
		}
	}
	return sections
}

// MoveSectionDown swaps with the next section; no-op at the bottom.
func MoveSectionDown(sections []Section, sectionID string) []Section {
	for i := range sections {
		if sections[i].ID == sectionID {
			if i < len(sections)-1 {
				sections[i], sections[i+1] = sections[i+1], sections[i]
			}
			break
		}
	}
	return sections
}

/* =========================
   Field mutations
   ========================= */

func AddField(sections []Section, sectionID, label string, fieldType string) []Section {
	for i := range sections {
		if sections[i].ID == sectionID {
			sections[i].Fields = append(sections[i].Fields, Field{
				ID:    NewPlaceholderID("field"),
				Label: label,
				Value: "",
				Type:  string(model.ParseFieldType(fieldType)),
			})
		}
	}
	return sections
}

func RemoveField(sections []Section, sectionID, fieldID string) []Section {
	for i := range sections {
		if sections[i].ID != sectionID {
			continue
		}
		fields := sections[i].Fields[:0]
		for _, f := range sections[i].Fields {
			if f.ID != fieldID {
				fields = append(fields, f)
			}
		}
		sections[i].Fields = fields
	}
	return sections
}

func SetFieldLabel(sections []Section, sectionID, fieldID, label string) []Section {
	return updateField(sections, sectionID, fieldID, func(f *Field) { f.Label = label })
}

func SetFieldType(sections []Section, sectionID, fieldID, fieldType string) []Section {
	return updateField(sections, sectionID, fieldID, func(f *Field) {
		f.Type = string(model.ParseFieldType(fieldType))
	})
}

// SetFieldValue keeps "" as-is: clearing a field persists as blank.
func SetFieldValue(sections []Section, sectionID, fieldID, value string) []Section {
	return updateField(sections, sectionID, fieldID, func(f *Field) { f.Value = value })
}

func MoveFieldUp(sections []Section, sectionID, fieldID string) []Section {
	for i := range sections {
		if sections[i].ID != sectionID {
			continue
		}
		for j := range sections[i].Fields {
			if sections[i].Fields[j].ID == fieldID {
				if j > 0 {
					sections[i].Fields[j-1], sections[i].Fields[j] = sections[i].Fields[j], sections[i].Fields[j-1]
				}
				return sections
			}
		}
	}
	return sections
}

func MoveFieldDown(sections []Section, sectionID, fieldID string) []Section {
	for i := range sections {
		if sections[i].ID != sectionID {
			continue
		}
		for j := range sections[i].Fields {
			if sections[i].Fields[j].ID == fieldID {
				if j < len(sections[i].Fields)-1 {
					sections[i].Fields[j], sections[i].Fields[j+1] = sections[i].Fields[j+1], sections[i].Fields[j]
				}
				return sections
			}
		}
	}
	return sections
}

func updateField(sections []Section, sectionID, fieldID string, fn func(*Field)) []Section {
	for i := range sections {
		if sections[i].ID != sectionID {
			continue
		}
		for j := range sections[i].Fields {
			if sections[i].Fields[j].ID == fieldID {
				fn(&sections[i].Fields[j])
			}
		}
	}
	return sections
}
