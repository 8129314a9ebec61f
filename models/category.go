package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is a catalog grouping with a unique URL slug.
type Category struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Slug  string             `json:"slug" bson:"slug"`
	Image *string            `json:"image" bson:"image,omitempty"`
}
