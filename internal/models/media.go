package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaAudio    = "audio"
	MediaDocument = "document"
)

// Media is an uploaded file, optionally attached to a post
type Media struct {
	Base       `bson:",inline"`
	UploaderID primitive.ObjectID  `json:"uploader_id" bson:"uploader_id"`
	PostID     *primitive.ObjectID `json:"post_id" bson:"post_id"`
	URL        string              `json:"url" bson:"url"`
	Type       string              `json:"type" bson:"type"`
	Size       int64               `json:"size" bson:"size"`
}

type CreateMediaRequest struct {
	UploaderID primitive.ObjectID  `json:"uploader_id" validate:"required"`
	PostID     *primitive.ObjectID `json:"post_id"`
	URL        string              `json:"url" validate:"required"`
	Type       string              `json:"type" validate:"required,oneof=image video audio document"`
	Size       int64               `json:"size" validate:"min=0"`
}

type UpdateMediaRequest struct {
	PostID *primitive.ObjectID `json:"post_id,omitempty" bson:"post_id,omitempty"`
	URL    *string             `json:"url,omitempty" bson:"url,omitempty"`
	Type   *string             `json:"type,omitempty" bson:"type,omitempty" validate:"omitempty,oneof=image video audio document"`
	Size   *int64              `json:"size,omitempty" bson:"size,omitempty" validate:"omitempty,min=0"`
}
