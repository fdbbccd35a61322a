// file: internals/features/profiles/sections/model/section_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileSectionModel maps the profile_sections table. display_order is
// dense and ascending per profile but deliberately carries no uniqueness
// constraint: the reorder operation rewrites all affected rows instead.
type ProfileSectionModel struct {
	ProfileSectionID        uuid.UUID `json:"profile_section_id" gorm:"type:uuid;primaryKey;column:profile_section_id"`
	ProfileSectionProfileID uuid.UUID `json:"profile_section_profile_id" gorm:"type:uuid;not null;index:idx_profile_sections_profile_id;column:profile_section_profile_id"`

	ProfileSectionTitle string `json:"profile_section_title" gorm:"type:text;not null;column:profile_section_title"`
	// Slug derived from the title or template. Duplicates per profile are
	// allowed; titles get a numeric suffix instead.
	ProfileSectionKey          string `json:"profile_section_key" gorm:"type:varchar(100);not null;index:idx_profile_sections_key;column:profile_section_key"`
	ProfileSectionDisplayOrder int    `json:"profile_section_display_order" gorm:"not null;default:0;column:profile_section_display_order"`

	ProfileSectionCreatedAt time.Time `json:"profile_section_created_at" gorm:"column:profile_section_created_at;autoCreateTime"`
	ProfileSectionUpdatedAt time.Time `json:"profile_section_updated_at" gorm:"column:profile_section_updated_at;autoUpdateTime"`
}

func (ProfileSectionModel) TableName() string { return "profile_sections" }

func (m *ProfileSectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProfileSectionID == uuid.Nil {
		m.ProfileSectionID = uuid.New()
	}
	return nil
}
