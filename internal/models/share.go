package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Share records a user re-sharing a post
type Share struct {
	Base   `bson:",inline"`
	UserID primitive.ObjectID `json:"user_id" bson:"user_id"`
	PostID primitive.ObjectID `json:"post_id" bson:"post_id"`
}

type CreateShareRequest struct {
	UserID primitive.ObjectID `json:"user_id" validate:"required"`
	PostID primitive.ObjectID `json:"post_id" validate:"required"`
}

type UpdateShareRequest struct {
	PostID *primitive.ObjectID `json:"post_id,omitempty" bson:"post_id,omitempty"`
}
