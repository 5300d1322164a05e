package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchHistory is a query a user ran. Stored in SQL.
type SearchHistory struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(24);index;not null"`
	Query     string    `json:"query" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SearchHistory) TableName() string { return "search_history" }

func (s SearchHistory) Key() string { return s.ID }

func (s *SearchHistory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type CreateSearchHistoryRequest struct {
	UserID string `json:"user_id" validate:"required,len=24,hexadecimal"`
	Query  string `json:"query" validate:"required,max=200"`
}

type UpdateSearchHistoryRequest struct {
	Query *string `json:"query,omitempty" bson:"query,omitempty" validate:"omitempty,max=200"`
}
