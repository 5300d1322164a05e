package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment represents a comment on a post. A non-nil ParentCommentID makes it a reply.
type Comment struct {
	Base            `bson:",inline"`
	PostID          primitive.ObjectID  `json:"post_id" bson:"post_id"`
	AuthorID        primitive.ObjectID  `json:"author_id" bson:"author_id"`
	Content         string              `json:"content" bson:"content"`
	ParentCommentID *primitive.ObjectID `json:"parent_comment_id" bson:"parent_comment_id"`
	LikeCount       int                 `json:"like_count" bson:"like_count"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID          primitive.ObjectID  `json:"post_id" validate:"required"`
	AuthorID        primitive.ObjectID  `json:"author_id" validate:"required"`
	Content         string              `json:"content" validate:"required,min=1,max=2000"`
	ParentCommentID *primitive.ObjectID `json:"parent_comment_id"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content   *string `json:"content,omitempty" bson:"content,omitempty" validate:"omitempty,min=1,max=2000"`
	LikeCount *int    `json:"like_count,omitempty" bson:"like_count,omitempty" validate:"omitempty,min=0"`
}
