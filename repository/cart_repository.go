package repository

import (
	"context"
	"errors"

	"jewels-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{collection: db.Collection("cart_items")}
}

// EnsureIndexes creates the unique (user_id, product_id) index that closes
// the concurrent first-insert race for a pair.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *CartRepository) FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "product_id": productID}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// IncrementQuantity merges qty into an existing line item with an atomic
// conditional update: the increment only applies while the stored quantity
// stays at or below maxQuantity-qty. Reports whether a document matched, so
// the check and the merge cannot interleave with a concurrent request.
func (r *CartRepository) IncrementQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty, maxQuantity int) (bool, error) {
	filter := bson.M{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   bson.M{"$lte": maxQuantity - qty},
	}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"quantity": qty}})
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *CartRepository) Insert(ctx context.Context, item *models.CartItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// SetQuantity replaces the quantity for a pair. Returns MatchedCount: zero
// means the line item does not exist, while setting the same quantity again
// is still a match.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty int) (int64, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID, "product_id": productID},
		bson.M{"$set": bson.M{"quantity": qty}},
	)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// Delete removes the pair's line item. Deleting an absent pair is not an
// error.
func (r *CartRepository) Delete(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "product_id": productID})
	return err
}

// FindLinesByUser joins each line item with a snapshot of its product.
// The $unwind keeps inner-join semantics: items whose product was deleted
// drop out of the result.
func (r *CartRepository) FindLinesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartLine, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "product_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$project", Value: bson.M{
			"_id":        1,
			"product_id": 1,
			"quantity":   1,
			"product": bson.M{
				"_id":           "$product._id",
				"images":        "$product.images",
				"name":          "$product.name",
				"price":         "$product.price",
				"originalPrice": "$product.originalPrice",
				"image":         "$product.image",
				"size":          "$product.size",
				"stock":         "$product.stock",
			},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lines []models.CartLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
