package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	MessageSent      = "sent"
	MessageDelivered = "delivered"
	MessageSeen      = "seen"
)

// Message is a direct message between two users
type Message struct {
	Base       `bson:",inline"`
	SenderID   primitive.ObjectID `json:"sender_id" bson:"sender_id"`
	ReceiverID primitive.ObjectID `json:"receiver_id" bson:"receiver_id"`
	Content    string             `json:"content" bson:"content"`
	MediaURL   string             `json:"media_url" bson:"media_url"`
	Status     string             `json:"status" bson:"status"`
}

type CreateMessageRequest struct {
	SenderID   primitive.ObjectID `json:"sender_id" validate:"required"`
	ReceiverID primitive.ObjectID `json:"receiver_id" validate:"required"`
	Content    string             `json:"content" validate:"required_without=MediaURL,max=5000"`
	MediaURL   string             `json:"media_url"`
	Status     string             `json:"status" validate:"omitempty,oneof=sent delivered seen"`
}

type UpdateMessageRequest struct {
	Content  *string `json:"content,omitempty" bson:"content,omitempty" validate:"omitempty,max=5000"`
	MediaURL *string `json:"media_url,omitempty" bson:"media_url,omitempty"`
	Status   *string `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=sent delivered seen"`
}
