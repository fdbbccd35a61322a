// file: internals/features/profiles/sections/service/template_catalog.go
package service

import (
	"profilku_backend/internals/features/profiles/sections/model"
	"profilku_backend/internals/features/profiles/sections/reconcile"
)

/* =========================
   Template Catalog
   ========================= */

type FieldTemplate struct {
	FieldKey   string          `json:"field_key"`
	FieldLabel string          `json:"field_label"`
	FieldType  model.FieldType `json:"field_type"`
}

type SectionTemplate struct {
	SectionKey  string          `json:"section_key"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Fields      []FieldTemplate `json:"fields"`
}

// sectionTemplates is the whole catalog; small and fixed, so lookups
// just scan it.
var sectionTemplates = []SectionTemplate{
	{
		SectionKey:  "work_experience",
		Title:       "Work Experience",
		Description: "A role you have held, with company and dates.",
		Fields: []FieldTemplate{
			{FieldKey: "company", FieldLabel: "Company", FieldType: model.FieldTypeText},
			{FieldKey: "position", FieldLabel: "Position", FieldType: model.FieldTypeText},
			{FieldKey: "start_date", FieldLabel: "Start Date", FieldType: model.FieldTypeDate},
			{FieldKey: "end_date", FieldLabel: "End Date", FieldType: model.FieldTypeDate},
			{FieldKey: "description", FieldLabel: "Description", FieldType: model.FieldTypeTextarea},
		},
	},
	{
		SectionKey:  "education",
		Title:       "Education",
		Description: "A school, degree and graduation year.",
		Fields: []FieldTemplate{
			{FieldKey: "school", FieldLabel: "School", FieldType: model.FieldTypeText},
			{FieldKey: "degree", FieldLabel: "Degree", FieldType: model.FieldTypeText},
			{FieldKey: "graduation_date", FieldLabel: "Graduation Date", FieldType: model.FieldTypeDate},
		},
	},
	{
		SectionKey:  "skills",
		Title:       "Skills",
		Description: "What you are good at.",
		Fields: []FieldTemplate{
			{FieldKey: "skill", FieldLabel: "Skill", FieldType: model.FieldTypeText},
			{FieldKey: "level", FieldLabel: "Level", FieldType: model.FieldTypeText},
		},
	},
	{
		SectionKey:  "certifications",
		Title:       "Certifications",
		Description: "Certificates and licenses.",
		Fields: []FieldTemplate{
			{FieldKey: "name", FieldLabel: "Name", FieldType: model.FieldTypeText},
			{FieldKey: "issuer", FieldLabel: "Issuer", FieldType: model.FieldTypeText},
			{FieldKey: "issue_date", FieldLabel: "Issue Date", FieldType: model.FieldTypeDate},
			{FieldKey: "credential_url", FieldLabel: "Credential URL", FieldType: model.FieldTypeURL},
		},
	},
	{
		SectionKey:  "projects",
		Title:       "Projects",
		Description: "Things you have built or shipped.",
		Fields: []FieldTemplate{
			{FieldKey: "name", FieldLabel: "Name", FieldType: model.FieldTypeText},
			{FieldKey: "url", FieldLabel: "URL", FieldType: model.FieldTypeURL},
			{FieldKey: "description", FieldLabel: "Description", FieldType: model.FieldTypeTextarea},
		},
	},
	{
		SectionKey:  "contact",
		Title:       "Contact",
		Description: "How people can reach you.",
		Fields: []FieldTemplate{
			{FieldKey: "email", FieldLabel: "Email", FieldType: model.FieldTypeEmail},
			{FieldKey: "website", FieldLabel: "Website", FieldType: model.FieldTypeURL},
		},
	},
}

func TemplateCatalog() []SectionTemplate {
	return sectionTemplates
}

// FindTemplate returns nil for an unknown key; it never errors.
func FindTemplate(key string) *SectionTemplate {
	for i := range sectionTemplates {
		if sectionTemplates[i].SectionKey == key {
			return &sectionTemplates[i]
		}
	}
	return nil
}

// MaterializeTemplate builds a draft editable section from a template:
// fresh placeholder ids, empty values. It does not touch the store; the
// caller persists the result. Unknown key → nil.
func MaterializeTemplate(key string) *reconcile.Section {
	tpl := FindTemplate(key)
	if tpl == nil {
		return nil
	}
	sec := reconcile.Section{
		ID:     reconcile.NewPlaceholderID("section"),
		Key:    tpl.SectionKey,
		Title:  tpl.Title,
		Fields: make([]reconcile.Field, 0, len(tpl.Fields)),
	}
	for _, ft := range tpl.Fields {
		sec.Fields = append(sec.Fields, reconcile.Field{
			ID:    reconcile.NewPlaceholderID("field"),
			Label: ft.FieldLabel,
			Value: "",
			Type:  string(ft.FieldType),
		})
	}
	return &sec
}
