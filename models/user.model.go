package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account status values. An empty status is treated as active for accounts
// created before the field existed.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// User represents a customer or admin account. Admin status is a plain
// boolean capability flag, not a role hierarchy.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	IsAdmin   bool               `bson:"is_admin" json:"isAdmin"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// IsBlocked reports whether the account has been disabled by an admin.
func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}
