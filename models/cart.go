package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is one line item: a quantity of a product attached to a user.
// At most one document exists per (user, product) pair.
type CartItem struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// ProductSnapshot is the denormalized product view embedded in cart
// responses to avoid a second round trip. Fields absent from the product
// document surface as null.
type ProductSnapshot struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	Images        []string           `json:"images" bson:"images"`
	Name          string             `json:"name" bson:"name"`
	Price         float64            `json:"price" bson:"price"`
	OriginalPrice *float64           `json:"originalPrice" bson:"originalPrice,omitempty"`
	Image         *string            `json:"image" bson:"image,omitempty"`
	Size          *string            `json:"size" bson:"size,omitempty"`
	Stock         int                `json:"stock" bson:"stock"`
}

// CartLine is a cart item joined with its product snapshot.
type CartLine struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Product   ProductSnapshot    `json:"product" bson:"product"`
}
