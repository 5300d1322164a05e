package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationMessage = "message"
	NotificationMention = "mention"
	NotificationSystem  = "system"
)

// Notification is addressed to UserID. SenderID and TargetID are optional.
type Notification struct {
	Base     `bson:",inline"`
	UserID   primitive.ObjectID  `json:"user_id" bson:"user_id"`
	SenderID *primitive.ObjectID `json:"sender_id" bson:"sender_id"`
	Type     string              `json:"type" bson:"type"`
	TargetID *primitive.ObjectID `json:"target_id" bson:"target_id"`
	Content  string              `json:"content" bson:"content"`
	Read     bool                `json:"read" bson:"read"`
}

type CreateNotificationRequest struct {
	UserID   primitive.ObjectID  `json:"user_id" validate:"required"`
	SenderID *primitive.ObjectID `json:"sender_id"`
	Type     string              `json:"type" validate:"required,oneof=like comment follow message mention system"`
	TargetID *primitive.ObjectID `json:"target_id"`
	Content  string              `json:"content" validate:"max=1000"`
	Read     bool                `json:"read"`
}

type UpdateNotificationRequest struct {
	Content *string `json:"content,omitempty" bson:"content,omitempty" validate:"omitempty,max=1000"`
	Read    *bool   `json:"read,omitempty" bson:"read,omitempty"`
}
