// file: internals/features/profiles/sections/dto/section_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"profilku_backend/internals/features/profiles/sections/model"
	"profilku_backend/internals/features/profiles/sections/reconcile"
	"profilku_backend/internals/features/profiles/sections/repository"
)

/* ===========================
   Response DTOs
   =========================== */

type SectionFieldDTO struct {
	ProfileSectionFieldID           uuid.UUID `json:"profile_section_field_id"`
	ProfileSectionFieldKey          string    `json:"profile_section_field_key"`
	ProfileSectionFieldLabel        string    `json:"profile_section_field_label"`
	ProfileSectionFieldValue        string    `json:"profile_section_field_value"`
	ProfileSectionFieldType         string    `json:"profile_section_field_type"`
	ProfileSectionFieldDisplayOrder int       `json:"profile_section_field_display_order"`
}

type SectionDTO struct {
	ProfileSectionID           uuid.UUID         `json:"profile_section_id"`
	ProfileSectionProfileID    uuid.UUID         `json:"profile_section_profile_id"`
	ProfileSectionTitle        string            `json:"profile_section_title"`
	ProfileSectionKey          string            `json:"profile_section_key"`
	ProfileSectionDisplayOrder int               `json:"profile_section_display_order"`
	ProfileSectionCreatedAt    time.Time         `json:"profile_section_created_at"`
	Fields                     []SectionFieldDTO `json:"fields"`
}

func ToSectionFieldDTO(f model.ProfileSectionFieldModel) SectionFieldDTO {
	return SectionFieldDTO{
		ProfileSectionFieldID:           f.ProfileSectionFieldID,
		ProfileSectionFieldKey:          f.ProfileSectionFieldKey,
		ProfileSectionFieldLabel:        f.ProfileSectionFieldLabel,
		ProfileSectionFieldValue:        f.ProfileSectionFieldValue,
		ProfileSectionFieldType:         string(f.ProfileSectionFieldType),
		ProfileSectionFieldDisplayOrder: f.ProfileSectionFieldDisplayOrder,
	}
}

func ToSectionDTO(sw repository.SectionWithFields) SectionDTO {
	fields := make([]SectionFieldDTO, 0, len(sw.Fields))
	for _, f := range sw.Fields {
		fields = append(fields, ToSectionFieldDTO(f))
	}
	return SectionDTO{
		ProfileSectionID:           sw.Section.ProfileSectionID,
		ProfileSectionProfileID:    sw.Section.ProfileSectionProfileID,
		ProfileSectionTitle:        sw.Section.ProfileSectionTitle,
		ProfileSectionKey:          sw.Section.ProfileSectionKey,
		ProfileSectionDisplayOrder: sw.Section.ProfileSectionDisplayOrder,
		ProfileSectionCreatedAt:    sw.Section.ProfileSectionCreatedAt,
		Fields:                     fields,
	}
}

func ToSectionDTOs(list []repository.SectionWithFields) []SectionDTO {
	out := make([]SectionDTO, 0, len(list))
	for _, sw := range list {
		out = append(out, ToSectionDTO(sw))
	}
	return out
}

/* ===========================
   Request DTOs
   =========================== */

type FieldInput struct {
	FieldID      *string `json:"field_id,omitempty"`
	FieldKey     *string `json:"field_key,omitempty" validate:"omitempty,max=100"`
	FieldLabel   string  `json:"field_label" validate:"required,max=200"`
	FieldValue   *string `json:"field_value,omitempty"`
	FieldType    *string `json:"field_type,omitempty" validate:"omitempty,oneof=text url email date textarea"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// ToFieldWrite keeps empty-string values as empty strings; a nil value
// also becomes "" so clearing a field persists as blank.
func (in FieldInput) ToFieldWrite() repository.FieldWrite {
	fw := repository.FieldWrite{
		FieldLabel:   strings.TrimSpace(in.FieldLabel),
		DisplayOrder: in.DisplayOrder,
	}
	if in.FieldID != nil {
		fw.ID = strings.TrimSpace(*in.FieldID)
	}
	if in.FieldKey != nil {
		fw.FieldKey = strings.TrimSpace(*in.FieldKey)
	}
	if in.FieldValue != nil {
		fw.FieldValue = *in.FieldValue
	}
	if in.FieldType != nil {
		fw.FieldType = *in.FieldType
	}
	return fw
}

func ToFieldWrites(list []FieldInput) []repository.FieldWrite {
	out := make([]repository.FieldWrite, 0, len(list))
	for _, in := range list {
		out = append(out, in.ToFieldWrite())
	}
	return out
}

type CreateSectionRequest struct {
	// Either a free-form title or a template key; template wins.
	Title       string       `json:"title" validate:"required_without=TemplateKey,omitempty,max=200"`
	TemplateKey *string      `json:"template_key,omitempty"`
	SectionKey  *string      `json:"section_key,omitempty" validate:"omitempty,max=100"`
	Fields      []FieldInput `json:"fields" validate:"omitempty,dive"`
}

type UpdateSectionRequest struct {
	Title      *string      `json:"title" validate:"omitempty,max=200"`
	SectionKey *string      `json:"section_key" validate:"omitempty,max=100"`
	Fields     []FieldInput `json:"fields" validate:"omitempty,dive"`
}

type ReorderRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids" validate:"required,min=1"`
}

/* ===========================
   Orchestrator entry payload
   =========================== */

// ApplyProfileUpdateRequest is the single entry point payload of the
// update orchestrator; which fields matter depends on modal_type.
type ApplyProfileUpdateRequest struct {
	ModalType string `json:"modal_type" validate:"required,oneof=profile bio work-item sections section-edit"`

	// profile / bio
	Profile map[string]any `json:"profile,omitempty"`
	Bio     *string        `json:"bio,omitempty"`

	// work-item
	WorkItem      map[string]any `json:"work_item,omitempty"`
	WorkItemIndex *int           `json:"work_item_index,omitempty"`

	// sections: the engine's full editable state plus explicit deletions
	Sections          []reconcile.Section `json:"sections,omitempty"`
	DeletedSectionIDs []string            `json:"deleted_section_ids,omitempty"`
	DeletedFieldIDs   []string            `json:"deleted_field_ids,omitempty"`

	// section-edit
	SectionKey *string        `json:"section_key,omitempty"`
	Section    map[string]any `json:"section,omitempty"`
}
