// file: internals/features/profiles/recommendations/model/recommendation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecommendationStatus string

const (
	RecommendationStatusPending  RecommendationStatus = "pending"
	RecommendationStatusApproved RecommendationStatus = "approved"
	RecommendationStatusRejected RecommendationStatus = "rejected"
)

func (s RecommendationStatus) Valid() bool {
	switch s {
	case RecommendationStatusPending, RecommendationStatusApproved, RecommendationStatusRejected:
		return true
	}
	return false
}

// RecommendationModel maps the recommendations table. A visitor writes
// one in pending; only the profile owner moves it to approved or
// rejected, and only approved + public entries render on the public page.
type RecommendationModel struct {
	RecommendationID        uuid.UUID `json:"recommendation_id" gorm:"type:uuid;primaryKey;column:recommendation_id"`
	RecommendationProfileID uuid.UUID `json:"recommendation_profile_id" gorm:"type:uuid;not null;index:idx_recommendations_profile;column:recommendation_profile_id"`

	RecommendationAuthorName  string  `json:"recommendation_author_name" gorm:"type:varchar(100);not null;column:recommendation_author_name"`
	RecommendationAuthorEmail string  `json:"recommendation_author_email" gorm:"type:varchar(255);not null;column:recommendation_author_email"`
	RecommendationAuthorTitle *string `json:"recommendation_author_title,omitempty" gorm:"type:varchar(150);column:recommendation_author_title"`
	RecommendationBody        string  `json:"recommendation_body" gorm:"type:text;not null;column:recommendation_body"`

	RecommendationStatus   RecommendationStatus `json:"recommendation_status" gorm:"type:varchar(20);not null;default:'pending';index:idx_recommendations_status;column:recommendation_status"`
	RecommendationIsPublic bool                 `json:"recommendation_is_public" gorm:"not null;default:true;column:recommendation_is_public"`

	RecommendationCreatedAt time.Time `json:"recommendation_created_at" gorm:"column:recommendation_created_at;autoCreateTime"`
	RecommendationUpdatedAt time.Time `json:"recommendation_updated_at" gorm:"column:recommendation_updated_at;autoUpdateTime"`
}

func (RecommendationModel) TableName() string { return "recommendations" }

func (m *RecommendationModel) BeforeCreate(tx *gorm.DB) error {
	if m.RecommendationID == uuid.Nil {
		m.RecommendationID = uuid.New()
	}
	return nil
}
