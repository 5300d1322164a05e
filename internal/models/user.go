package models

import (
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"

	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

// User is an account. The password holds a bcrypt hash and is never serialized.
type User struct {
	Base     `bson:",inline"`
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`
	Role     string `json:"role" bson:"role"`
	Status   string `json:"status" bson:"status"`
}

// UserCompact is the slice of a user attached to posts, comments and resolved targets.
type UserCompact struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Role     string             `json:"role"`
}

// ToCompact converts a user into its compact form
func (u User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, Role: u.Role}
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin moderator"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=active suspended deleted"`
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" bson:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" bson:"password,omitempty" validate:"omitempty,min=6"`
	Role     *string `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=user admin moderator"`
	Status   *string `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=active suspended deleted"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
