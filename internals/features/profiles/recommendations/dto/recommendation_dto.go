// file: internals/features/profiles/recommendations/dto/recommendation_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"profilku_backend/internals/features/profiles/recommendations/model"
)

type RecommendationDTO struct {
	RecommendationID          uuid.UUID `json:"recommendation_id"`
	RecommendationProfileID   uuid.UUID `json:"recommendation_profile_id"`
	RecommendationAuthorName  string    `json:"recommendation_author_name"`
	RecommendationAuthorEmail string    `json:"recommendation_author_email"`
	RecommendationAuthorTitle *string   `json:"recommendation_author_title,omitempty"`
	RecommendationBody        string    `json:"recommendation_body"`
	RecommendationStatus      string    `json:"recommendation_status"`
	RecommendationIsPublic    bool      `json:"recommendation_is_public"`
	RecommendationCreatedAt   time.Time `json:"recommendation_created_at"`
}

// PublicRecommendationDTO hides the author's email from visitors.
type PublicRecommendationDTO struct {
	RecommendationID          uuid.UUID `json:"recommendation_id"`
	RecommendationAuthorName  string    `json:"recommendation_author_name"`
	RecommendationAuthorTitle *string   `json:"recommendation_author_title,omitempty"`
	RecommendationBody        string    `json:"recommendation_body"`
	RecommendationCreatedAt   time.Time `json:"recommendation_created_at"`
}

func ToRecommendationDTO(m model.RecommendationModel) RecommendationDTO {
	return RecommendationDTO{
		RecommendationID:          m.RecommendationID,
		RecommendationProfileID:   m.RecommendationProfileID,
		RecommendationAuthorName:  m.RecommendationAuthorName,
		RecommendationAuthorEmail: m.RecommendationAuthorEmail,
		RecommendationAuthorTitle: m.RecommendationAuthorTitle,
		RecommendationBody:        m.RecommendationBody,
		RecommendationStatus:      string(m.RecommendationStatus),
		RecommendationIsPublic:    m.RecommendationIsPublic,
		RecommendationCreatedAt:   m.RecommendationCreatedAt,
	}
}

func ToRecommendationDTOs(list []model.RecommendationModel) []RecommendationDTO {
	out := make([]RecommendationDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToRecommendationDTO(m))
	}
	return out
}

func ToPublicRecommendationDTO(m model.RecommendationModel) PublicRecommendationDTO {
	return PublicRecommendationDTO{
		RecommendationID:          m.RecommendationID,
		RecommendationAuthorName:  m.RecommendationAuthorName,
		RecommendationAuthorTitle: m.RecommendationAuthorTitle,
		RecommendationBody:        m.RecommendationBody,
		RecommendationCreatedAt:   m.RecommendationCreatedAt,
	}
}

func ToPublicRecommendationDTOs(list []model.RecommendationModel) []PublicRecommendationDTO {
	out := make([]PublicRecommendationDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToPublicRecommendationDTO(m))
	}
	return out
}

/* ===========================
   Requests
   =========================== */

type CreateRecommendationRequest struct {
	AuthorName  string  `json:"author_name" validate:"required,max=100"`
	AuthorEmail string  `json:"author_email" validate:"required,email,max=255"`
	AuthorTitle *string `json:"author_title,omitempty" validate:"omitempty,max=150"`
	Body        string  `json:"body" validate:"required,max=2000"`
}

func (r CreateRecommendationRequest) ToModel(profileID uuid.UUID) model.RecommendationModel {
	var title *string
	if r.AuthorTitle != nil {
		t := strings.TrimSpace(*r.AuthorTitle)
		if t != "" {
			title = &t
		}
	}
	return model.RecommendationModel{
		RecommendationProfileID:   profileID,
		RecommendationAuthorName:  strings.TrimSpace(r.AuthorName),
		RecommendationAuthorEmail: strings.ToLower(strings.TrimSpace(r.AuthorEmail)),
		RecommendationAuthorTitle: title,
		RecommendationBody:        strings.TrimSpace(r.Body),
		RecommendationStatus:      model.RecommendationStatusPending,
		RecommendationIsPublic:    true,
	}
}

type ModerateRecommendationRequest struct {
	Status   *string `json:"status" validate:"omitempty,oneof=approved rejected pending"`
	IsPublic *bool   `json:"is_public"`
}
