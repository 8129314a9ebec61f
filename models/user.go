package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a storefront account. Password holds the bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Role      string             `json:"role" bson:"role"`
	Picture   string             `json:"picture,omitempty" bson:"picture,omitempty"`
	IsGoogle  bool               `json:"is_google,omitempty" bson:"is_google,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
