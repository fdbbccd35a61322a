// file: internals/features/profiles/sections/reconcile/persist.go
package reconcile

import (
	"profilku_backend/internals/features/profiles/sections/model"
	helper "profilku_backend/internals/helpers"
)

// ToPersistableFields projects a section's editable fields into the
// patches the store consumes. Placeholder ids are dropped so the store
// inserts; real ids survive so it updates. display_order is simply the
// slice index, which keeps orders dense 0..n-1 no matter what sequence
// of mutations produced the slice. Empty values stay empty strings:
// clearing a field must persist as blank, not vanish.
func ToPersistableFields(sec Section) []FieldPatch {
	out := make([]FieldPatch, 0, len(sec.Fields))
	for i, f := range sec.Fields {
		p := FieldPatch{
			FieldKey:     helper.FieldKey(f.Label),
			FieldLabel:   f.Label,
			FieldValue:   f.Value,
			FieldType:    string(model.ParseFieldType(f.Type)),
			DisplayOrder: i,
		}
		if IsPersistedID(f.ID) {
			p.ID = f.ID
		}
		out = append(out, p)
	}
	return out
}
