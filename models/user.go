package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a store account. Password holds a bcrypt hash once persisted.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	IsAdmin   bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Customers returns the non-admin users, preserving order.
func Customers(users []User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if !u.IsAdmin {
			out = append(out, u)
		}
	}
	return out
}
