package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base carries the identity and timestamps shared by every document stored in MongoDB.
type Base struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Stamp assigns a fresh id and timestamps to a document that is about to be inserted.
func (b *Base) Stamp(now time.Time) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Key returns the hex form of the document id.
func (b Base) Key() string {
	return b.ID.Hex()
}

// Stampable is implemented by records that get server-assigned ids and timestamps on insert.
type Stampable interface {
	Stamp(now time.Time)
}

// Identified is implemented by every stored record.
type Identified interface {
	Key() string
}
