// file: internals/features/profiles/profile/dto/profile_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	profilemodel "profilku_backend/internals/features/profiles/profile/model"
)

/* ===========================
   Response DTO (explicit)
   =========================== */

type ProfileDTO struct {
	ProfileID     uuid.UUID `json:"profile_id"`
	ProfileUserID uuid.UUID `json:"profile_user_id"`

	ProfileUsername      *string `json:"profile_username,omitempty"`
	ProfileDisplayName   string  `json:"profile_display_name"`
	ProfileBio           *string `json:"profile_bio,omitempty"`
	ProfileAvatarURL     *string `json:"profile_avatar_url,omitempty"`
	ProfileBackgroundURL *string `json:"profile_background_url,omitempty"`
	ProfileWebsiteURL    *string `json:"profile_website_url,omitempty"`
	ProfileEmail         *string `json:"profile_email,omitempty"`

	ProfileSections json.RawMessage `json:"profile_sections"`

	ProfileCreatedAt time.Time `json:"profile_created_at"`
	ProfileUpdatedAt time.Time `json:"profile_updated_at"`
}

func ToProfileDTO(m profilemodel.ProfileModel) ProfileDTO {
	sections := json.RawMessage(m.ProfileSections)
	if len(sections) == 0 {
		sections = json.RawMessage("{}")
	}
	return ProfileDTO{
		ProfileID:            m.ProfileID,
		ProfileUserID:        m.ProfileUserID,
		ProfileUsername:      m.ProfileUsername,
		ProfileDisplayName:   m.ProfileDisplayName,
		ProfileBio:           m.ProfileBio,
		ProfileAvatarURL:     m.ProfileAvatarURL,
		ProfileBackgroundURL: m.ProfileBackgroundURL,
		ProfileWebsiteURL:    m.ProfileWebsiteURL,
		ProfileEmail:         m.ProfileEmail,
		ProfileSections:      sections,
		ProfileCreatedAt:     m.ProfileCreatedAt,
		ProfileUpdatedAt:     m.ProfileUpdatedAt,
	}
}

// PublicProfileDTO hides the owner linkage for visitor reads.
type PublicProfileDTO struct {
	ProfileUsername      *string         `json:"profile_username,omitempty"`
	ProfileDisplayName   string          `json:"profile_display_name"`
	ProfileBio           *string         `json:"profile_bio,omitempty"`
	ProfileAvatarURL     *string         `json:"profile_avatar_url,omitempty"`
	ProfileBackgroundURL *string         `json:"profile_background_url,omitempty"`
	ProfileWebsiteURL    *string         `json:"profile_website_url,omitempty"`
	ProfileSections      json.RawMessage `json:"profile_sections"`
}

func ToPublicProfileDTO(m profilemodel.ProfileModel) PublicProfileDTO {
	sections := json.RawMessage(m.ProfileSections)
	if len(sections) == 0 {
		sections = json.RawMessage("{}")
	}
	return PublicProfileDTO{
		ProfileUsername:      m.ProfileUsername,
		ProfileDisplayName:   m.ProfileDisplayName,
		ProfileBio:           m.ProfileBio,
		ProfileAvatarURL:     m.ProfileAvatarURL,
		ProfileBackgroundURL: m.ProfileBackgroundURL,
		ProfileWebsiteURL:    m.ProfileWebsiteURL,
		ProfileSections:      sections,
	}
}

/* ===========================
   Request DTOs
   =========================== */

type CreateProfileRequest struct {
	ProfileUsername    *string `json:"profile_username,omitempty" validate:"omitempty,max=50"`
	ProfileDisplayName string  `json:"profile_display_name" validate:"required,max=100"`
	ProfileBio         *string `json:"profile_bio,omitempty" validate:"omitempty,max=1000"`
	ProfileWebsiteURL  *string `json:"profile_website_url,omitempty" validate:"omitempty,url"`
	ProfileEmail       *string `json:"profile_email,omitempty" validate:"omitempty,email"`
}

func (r CreateProfileRequest) ToModel(userID uuid.UUID) profilemodel.ProfileModel {
	return profilemodel.ProfileModel{
		ProfileUserID:      userID,
		ProfileUsername:    trimLowerPtr(r.ProfileUsername),
		ProfileDisplayName: strings.TrimSpace(r.ProfileDisplayName),
		ProfileBio:         trimPtr(r.ProfileBio),
		ProfileWebsiteURL:  trimPtr(r.ProfileWebsiteURL),
		ProfileEmail:       trimLowerPtr(r.ProfileEmail),
		ProfileSections:    []byte("{}"),
	}
}

type UpdateProfileRequest struct {
	ProfileUsername    *string `json:"profile_username" validate:"omitempty,max=50"`
	ProfileDisplayName *string `json:"profile_display_name" validate:"omitempty,max=100"`
	ProfileBio         *string `json:"profile_bio" validate:"omitempty,max=1000"`
	ProfileWebsiteURL  *string `json:"profile_website_url" validate:"omitempty,url"`
	ProfileEmail       *string `json:"profile_email" validate:"omitempty,email"`
}

// ToUpdateMap: always DB column names.
func (in *UpdateProfileRequest) ToUpdateMap() map[string]interface{} {
	m := map[string]interface{}{}

	setStr := func(key string, v *string) {
		if v != nil {
			m[key] = strings.TrimSpace(*v)
		}
	}

	if in.ProfileUsername != nil {
		m["profile_username"] = strings.ToLower(strings.TrimSpace(*in.ProfileUsername))
	}
	setStr("profile_display_name", in.ProfileDisplayName)
	setStr("profile_bio", in.ProfileBio)
	setStr("profile_website_url", in.ProfileWebsiteURL)
	if in.ProfileEmail != nil {
		m["profile_email"] = strings.ToLower(strings.TrimSpace(*in.ProfileEmail))
	}
	return m
}

/* ===========================
   Helpers
   =========================== */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func trimLowerPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.ToLower(strings.TrimSpace(*s))
	if t == "" {
		return nil
	}
	return &t
}
