package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the public details of a user. One per user.
type Profile struct {
	Base           `bson:",inline"`
	UserID         primitive.ObjectID `json:"user_id" bson:"user_id"`
	Bio            string             `json:"bio" bson:"bio"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
	CoverPhoto     string             `json:"cover_photo" bson:"cover_photo"`
	Location       string             `json:"location" bson:"location"`
	Website        string             `json:"website" bson:"website"`
	Birthdate      *time.Time         `json:"birthdate" bson:"birthdate"`
	Gender         string             `json:"gender" bson:"gender"`
	Interests      []string           `json:"interests" bson:"interests"`
}

type CreateProfileRequest struct {
	UserID         primitive.ObjectID `json:"user_id" validate:"required"`
	Bio            string             `json:"bio" validate:"max=500"`
	ProfilePicture string             `json:"profile_picture"`
	CoverPhoto     string             `json:"cover_photo"`
	Location       string             `json:"location" validate:"max=100"`
	Website        string             `json:"website" validate:"omitempty,url"`
	Birthdate      *time.Time         `json:"birthdate"`
	Gender         string             `json:"gender" validate:"omitempty,oneof=male female other"`
	Interests      []string           `json:"interests"`
}

type UpdateProfileRequest struct {
	Bio            *string    `json:"bio,omitempty" bson:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture *string    `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	CoverPhoto     *string    `json:"cover_photo,omitempty" bson:"cover_photo,omitempty"`
	Location       *string    `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=100"`
	Website        *string    `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,url"`
	Birthdate      *time.Time `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Gender         *string    `json:"gender,omitempty" bson:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Interests      []string   `json:"interests,omitempty" bson:"interests,omitempty"`
}
