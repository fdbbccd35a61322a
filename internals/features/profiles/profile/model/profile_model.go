// file: internals/features/profiles/profile/model/profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileModel maps the profiles table. profile_sections is a
// denormalized jsonb projection of the section/field rows for fast
// single-query reads; it is rebuilt by the update orchestrator after
// every row-level write and must never be written by anything else.
type ProfileModel struct {
	ProfileID     uuid.UUID `json:"profile_id" gorm:"type:uuid;primaryKey;column:profile_id"`
	ProfileUserID uuid.UUID `json:"profile_user_id" gorm:"type:uuid;not null;uniqueIndex:uq_profiles_user_id;column:profile_user_id"`

	// Username doubles as the subdomain: sari.profilku.app → "sari".
	ProfileUsername *string `json:"profile_username,omitempty" gorm:"type:varchar(50);uniqueIndex:uq_profiles_username;column:profile_username"`

	ProfileDisplayName   string  `json:"profile_display_name" gorm:"type:varchar(100);not null;column:profile_display_name"`
	ProfileBio           *string `json:"profile_bio,omitempty" gorm:"type:text;column:profile_bio"`
	ProfileAvatarURL     *string `json:"profile_avatar_url,omitempty" gorm:"type:text;column:profile_avatar_url"`
	ProfileBackgroundURL *string `json:"profile_background_url,omitempty" gorm:"type:text;column:profile_background_url"`
	ProfileWebsiteURL    *string `json:"profile_website_url,omitempty" gorm:"type:text;column:profile_website_url"`
	ProfileEmail         *string `json:"profile_email,omitempty" gorm:"type:varchar(255);column:profile_email"`

	ProfileSections datatypes.JSON `json:"profile_sections" gorm:"type:jsonb;not null;default:'{}';column:profile_sections"`

	ProfileCreatedAt time.Time      `json:"profile_created_at" gorm:"column:profile_created_at;autoCreateTime"`
	ProfileUpdatedAt time.Time      `json:"profile_updated_at" gorm:"column:profile_updated_at;autoUpdateTime"`
	ProfileDeletedAt gorm.DeletedAt `json:"profile_deleted_at,omitempty" gorm:"column:profile_deleted_at;index"`
}

func (ProfileModel) TableName() string { return "profiles" }

func (m *ProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProfileID == uuid.Nil {
		m.ProfileID = uuid.New()
	}
	return nil
}
