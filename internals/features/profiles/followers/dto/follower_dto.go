// file: internals/features/profiles/followers/dto/follower_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"profilku_backend/internals/features/profiles/followers/model"
)

type FollowerDTO struct {
	FollowerID        uuid.UUID `json:"follower_id"`
	FollowerName      string    `json:"follower_name"`
	FollowerEmail     string    `json:"follower_email"`
	FollowerMessage   *string   `json:"follower_message,omitempty"`
	FollowerCreatedAt time.Time `json:"follower_created_at"`
}

func ToFollowerDTO(m model.FollowerModel) FollowerDTO {
	return FollowerDTO{
		FollowerID:        m.FollowerID,
		FollowerName:      m.FollowerName,
		FollowerEmail:     m.FollowerEmail,
		FollowerMessage:   m.FollowerMessage,
		FollowerCreatedAt: m.FollowerCreatedAt,
	}
}

func ToFollowerDTOs(list []model.FollowerModel) []FollowerDTO {
	out := make([]FollowerDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToFollowerDTO(m))
	}
	return out
}

type FollowRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=1000"`
}

func (r FollowRequest) ToModel(profileID uuid.UUID) model.FollowerModel {
	var msg *string
	if r.Message != nil {
		m := strings.TrimSpace(*r.Message)
		if m != "" {
			msg = &m
		}
	}
	return model.FollowerModel{
		FollowerProfileID: profileID,
		FollowerName:      strings.TrimSpace(r.Name),
		FollowerEmail:     strings.ToLower(strings.TrimSpace(r.Email)),
		FollowerMessage:   msg,
	}
}
