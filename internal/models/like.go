package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	LikeTargetPost    = "post"
	LikeTargetComment = "comment"
	LikeTargetReply   = "reply"
)

// Like marks a user's like on a post, a comment or a reply
type Like struct {
	Base       `bson:",inline"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id"`
	TargetID   primitive.ObjectID `json:"target_id" bson:"target_id"`
	TargetType string             `json:"target_type" bson:"target_type"`
}

// OnComment reports whether the liked target lives in the comments collection.
func (l Like) OnComment() bool {
	return l.TargetType == LikeTargetComment || l.TargetType == LikeTargetReply
}

// CreateLikeRequest defines the request body for liking a target
type CreateLikeRequest struct {
	UserID     primitive.ObjectID `json:"user_id" validate:"required"`
	TargetID   primitive.ObjectID `json:"target_id" validate:"required"`
	TargetType string             `json:"target_type" validate:"required,oneof=post comment reply"`
}

type UpdateLikeRequest struct {
	TargetType *string `json:"target_type,omitempty" bson:"target_type,omitempty" validate:"omitempty,oneof=post comment reply"`
}
