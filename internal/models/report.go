package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	ReportTargetUser    = "user"
	ReportTargetPost    = "post"
	ReportTargetComment = "comment"
	ReportTargetMedia   = "media"

	ReportPending  = "pending"
	ReportReviewed = "reviewed"
	ReportResolved = "resolved"
)

// Report flags a user, post, comment or media item for moderation
type Report struct {
	Base       `bson:",inline"`
	ReporterID primitive.ObjectID `json:"reporter_id" bson:"reporter_id"`
	TargetType string             `json:"target_type" bson:"target_type"`
	TargetID   primitive.ObjectID `json:"target_id" bson:"target_id"`
	Reason     string             `json:"reason" bson:"reason"`
	Status     string             `json:"status" bson:"status"`
}

type CreateReportRequest struct {
	ReporterID primitive.ObjectID `json:"reporter_id" validate:"required"`
	TargetType string             `json:"target_type" validate:"required,oneof=user post comment media"`
	TargetID   primitive.ObjectID `json:"target_id" validate:"required"`
	Reason     string             `json:"reason" validate:"required,max=1000"`
	Status     string             `json:"status" validate:"omitempty,oneof=pending reviewed resolved"`
}

type UpdateReportRequest struct {
	Reason *string `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=1000"`
	Status *string `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=pending reviewed resolved"`
}
