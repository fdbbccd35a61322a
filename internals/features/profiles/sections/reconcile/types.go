// file: internals/features/profiles/sections/reconcile/types.go

// Package reconcile owns the editable in-memory representation of a
// profile's sections and every transformation between the historical
// storage shapes and the rows the repository persists. Everything in
// here is a pure data transform; no I/O.
package reconcile

// Field is one editable label/value pair inside a section. ID may be a
// real database id or a client-side placeholder; ClassifyID tells them
// apart at save time.
type Field struct {
	ID    string `json:"field_id"`
	Label string `json:"field_label"`
	Value string `json:"field_value"`
	Type  string `json:"field_type"`
}

// Section is the editable unit. ID follows the same real-vs-placeholder
// convention as Field.ID. Fields are ordered; their slice index is their
// display order.
type Section struct {
	ID     string  `json:"section_id"`
	Key    string  `json:"section_key"`
	Title  string  `json:"section_title"`
	Fields []Field `json:"fields"`
}

// FieldPatch is the save-shaped projection of a Field. ID is empty for
// placeholders so the store treats them as inserts.
type FieldPatch struct {
	ID           string `json:"field_id,omitempty"`
	FieldKey     string `json:"field_key"`
	FieldLabel   string `json:"field_label"`
	FieldValue   string `json:"field_value"`
	FieldType    string `json:"field_type"`
	DisplayOrder int    `json:"display_order"`
}
