package repository

import (
	"context"
	"time"

	"jewels-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishlistRepository struct {
	collection *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	return &WishlistRepository{collection: db.Collection("wishlist_items")}
}

func (r *WishlistRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert bookmarks the product; re-adding an existing pair is a no-op.
func (r *WishlistRepository) Upsert(ctx context.Context, userID, productID primitive.ObjectID) error {
	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":    userID,
		"product_id": productID,
		"added_at":   time.Now().UTC(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *WishlistRepository) Delete(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "product_id": productID})
	return err
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WishlistItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.WishlistItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
