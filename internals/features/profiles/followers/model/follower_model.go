// file: internals/features/profiles/followers/model/follower_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowerModel maps the followers table. Rows are write-once: a visitor
// leaves a name and email, nothing ever updates them. The unique index
// on (profile_id, email) makes a repeat follow a no-op at the DB level.
type FollowerModel struct {
	FollowerID        uuid.UUID `json:"follower_id" gorm:"type:uuid;primaryKey;column:follower_id"`
	FollowerProfileID uuid.UUID `json:"follower_profile_id" gorm:"type:uuid;not null;uniqueIndex:uq_followers_profile_email;column:follower_profile_id"`

	FollowerName    string  `json:"follower_name" gorm:"type:varchar(100);not null;column:follower_name"`
	FollowerEmail   string  `json:"follower_email" gorm:"type:varchar(255);not null;uniqueIndex:uq_followers_profile_email;column:follower_email"`
	FollowerMessage *string `json:"follower_message,omitempty" gorm:"type:text;column:follower_message"`

	FollowerCreatedAt time.Time `json:"follower_created_at" gorm:"column:follower_created_at;autoCreateTime"`
}

func (FollowerModel) TableName() string { return "followers" }

func (m *FollowerModel) BeforeCreate(tx *gorm.DB) error {
	if m.FollowerID == uuid.Nil {
		m.FollowerID = uuid.New()
	}
	return nil
}
