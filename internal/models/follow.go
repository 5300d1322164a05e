package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	FollowPending  = "pending"
	FollowAccepted = "accepted"
	FollowBlocked  = "blocked"
)

// Follow is a directed relationship from follower to followed
type Follow struct {
	Base       `bson:",inline"`
	FollowerID primitive.ObjectID `json:"follower_id" bson:"follower_id"`
	FollowedID primitive.ObjectID `json:"followed_id" bson:"followed_id"`
	Status     string             `json:"status" bson:"status"`
}

type CreateFollowRequest struct {
	FollowerID primitive.ObjectID `json:"follower_id" validate:"required"`
	FollowedID primitive.ObjectID `json:"followed_id" validate:"required"`
	Status     string             `json:"status" validate:"omitempty,oneof=pending accepted blocked"`
}

type UpdateFollowRequest struct {
	Status *string `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=pending accepted blocked"`
}
