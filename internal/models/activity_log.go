package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionLogin            = "login"
	ActionLogout           = "logout"
	ActionUpdatedProfile   = "updated_profile"
	ActionCreatedPost      = "created_post"
	ActionUpdatedPost      = "updated_post"
	ActionDeletedPost      = "deleted_post"
	ActionLikedPost        = "liked_post"
	ActionCommented        = "commented"
	ActionSharedPost       = "shared_post"
	ActionFollowedUser     = "followed_user"
	ActionUnfollowedUser   = "unfollowed_user"
	ActionSentMessage      = "sent_message"
	ActionReportedContent  = "reported_content"
	ActionReadNotification = "read_notification"
)

// ActivityLog is an append-only record of a user action. Stored in SQL and never updated.
type ActivityLog struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(24);index;not null"`
	Action    string    `json:"action" gorm:"type:varchar(32);index;not null"`
	TargetID  *string   `json:"target_id" gorm:"type:varchar(24)"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (a ActivityLog) Key() string { return a.ID }

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type CreateActivityLogRequest struct {
	UserID   string  `json:"user_id" validate:"required,len=24,hexadecimal"`
	Action   string  `json:"action" validate:"required,oneof=login logout updated_profile created_post updated_post deleted_post liked_post commented shared_post followed_user unfollowed_user sent_message reported_content read_notification"`
	TargetID *string `json:"target_id" validate:"omitempty,len=24,hexadecimal"`
}
