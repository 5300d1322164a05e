package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"
)

// UserSettings stores per-user preferences. One per user.
type UserSettings struct {
	Base                 `bson:",inline"`
	UserID               primitive.ObjectID `json:"user_id" bson:"user_id"`
	DarkMode             bool               `json:"dark_mode" bson:"dark_mode"`
	Language             string             `json:"language" bson:"language"`
	NotificationsEnabled bool               `json:"notifications_enabled" bson:"notifications_enabled"`
	PrivacyVisibility    string             `json:"privacy_visibility" bson:"privacy_visibility"`
}

type CreateUserSettingsRequest struct {
	UserID               primitive.ObjectID `json:"user_id" validate:"required"`
	DarkMode             bool               `json:"dark_mode"`
	Language             string             `json:"language" validate:"omitempty,min=2,max=10"`
	NotificationsEnabled *bool              `json:"notifications_enabled"`
	PrivacyVisibility    string             `json:"privacy_visibility" validate:"omitempty,oneof=public friends private"`
}

type UpdateUserSettingsRequest struct {
	DarkMode             *bool   `json:"dark_mode,omitempty" bson:"dark_mode,omitempty"`
	Language             *string `json:"language,omitempty" bson:"language,omitempty" validate:"omitempty,min=2,max=10"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty" bson:"notifications_enabled,omitempty"`
	PrivacyVisibility    *string `json:"privacy_visibility,omitempty" bson:"privacy_visibility,omitempty" validate:"omitempty,oneof=public friends private"`
}
