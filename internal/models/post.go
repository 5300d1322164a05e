package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post represents a social media post stored in MongoDB
type Post struct {
	Base         `bson:",inline"`
	AuthorID     primitive.ObjectID `json:"author_id" bson:"author_id"`
	Content      string             `json:"content" bson:"content"`
	MediaURL     string             `json:"media_url" bson:"media_url"`
	Visibility   string             `json:"visibility" bson:"visibility"`
	LikeCount    int                `json:"like_count" bson:"like_count"`
	CommentCount int                `json:"comment_count" bson:"comment_count"`
	ShareCount   int                `json:"share_count" bson:"share_count"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	AuthorID   primitive.ObjectID `json:"author_id" validate:"required"`
	Content    string             `json:"content" validate:"required_without=MediaURL,max=5000"`
	MediaURL   string             `json:"media_url"`
	Visibility string             `json:"visibility" validate:"omitempty,oneof=public friends private"`
}

// UpdatePostRequest replaces the named fields of a post. Counters may be set directly.
type UpdatePostRequest struct {
	Content      *string `json:"content,omitempty" bson:"content,omitempty" validate:"omitempty,max=5000"`
	MediaURL     *string `json:"media_url,omitempty" bson:"media_url,omitempty"`
	Visibility   *string `json:"visibility,omitempty" bson:"visibility,omitempty" validate:"omitempty,oneof=public friends private"`
	LikeCount    *int    `json:"like_count,omitempty" bson:"like_count,omitempty" validate:"omitempty,min=0"`
	CommentCount *int    `json:"comment_count,omitempty" bson:"comment_count,omitempty" validate:"omitempty,min=0"`
	ShareCount   *int    `json:"share_count,omitempty" bson:"share_count,omitempty" validate:"omitempty,min=0"`
}
