// file: internals/features/profiles/sections/model/field_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeURL      FieldType = "url"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextarea FieldType = "textarea"
)

// ParseFieldType falls back to text for anything unknown.
func ParseFieldType(s string) FieldType {
	switch FieldType(s) {
	case FieldTypeText, FieldTypeURL, FieldTypeEmail, FieldTypeDate, FieldTypeTextarea:
		return FieldType(s)
	default:
		return FieldTypeText
	}
}

// ProfileSectionFieldModel maps profile_section_fields. Values are always
// stored as strings, dates included (ISO YYYY-MM-DD).
type ProfileSectionFieldModel struct {
	ProfileSectionFieldID        uuid.UUID `json:"profile_section_field_id" gorm:"type:uuid;primaryKey;column:profile_section_field_id"`
	ProfileSectionFieldSectionID uuid.UUID `json:"profile_section_field_section_id" gorm:"type:uuid;not null;index:idx_profile_section_fields_section_id;column:profile_section_field_section_id"`

	ProfileSectionFieldKey          string    `json:"profile_section_field_key" gorm:"type:varchar(100);not null;column:profile_section_field_key"`
	ProfileSectionFieldLabel        string    `json:"profile_section_field_label" gorm:"type:text;not null;column:profile_section_field_label"`
	ProfileSectionFieldValue        string    `json:"profile_section_field_value" gorm:"type:text;not null;default:'';column:profile_section_field_value"`
	ProfileSectionFieldType         FieldType `json:"profile_section_field_type" gorm:"type:varchar(20);not null;default:'text';column:profile_section_field_type"`
	ProfileSectionFieldDisplayOrder int       `json:"profile_section_field_display_order" gorm:"not null;default:0;column:profile_section_field_display_order"`

	ProfileSectionFieldCreatedAt time.Time `json:"profile_section_field_created_at" gorm:"column:profile_section_field_created_at;autoCreateTime"`
	ProfileSectionFieldUpdatedAt time.Time `json:"profile_section_field_updated_at" gorm:"column:profile_section_field_updated_at;autoUpdateTime"`

	// FK with cascade delete: removing a section removes its fields.
	Section *ProfileSectionModel `json:"-" gorm:"foreignKey:ProfileSectionFieldSectionID;references:ProfileSectionID;constraint:OnDelete:CASCADE"`
}

func (ProfileSectionFieldModel) TableName() string { return "profile_section_fields" }

func (m *ProfileSectionFieldModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProfileSectionFieldID == uuid.Nil {
		m.ProfileSectionFieldID = uuid.New()
	}
	return nil
}
