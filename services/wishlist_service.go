package services

import (
	"context"
	"errors"

	"jewels-backend/models"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistRepo interface {
	Upsert(ctx context.Context, userID, productID primitive.ObjectID) error
	Delete(ctx context.Context, userID, productID primitive.ObjectID) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WishlistItem, error)
}

// WishlistEntry is a wishlist item joined with its product.
type WishlistEntry struct {
	ProductID string          `json:"product_id"`
	Product   *models.Product `json:"product"`
}

type WishlistService struct {
	wishlist WishlistRepo
	products ProductRepo
}

func NewWishlistService(wishlist WishlistRepo, products ProductRepo) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// AddToWishlist bookmarks the product. Re-adding is a no-op.
func (s *WishlistService) AddToWishlist(ctx context.Context, userID, productID string) error {
	uid, pid, err := parsePair(userID, productID)
	if err != nil {
		return err
	}
	if _, err := s.products.FindByID(ctx, pid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Product not found")
		}
		return apperrors.Internal(err)
	}
	if err := s.wishlist.Upsert(ctx, uid, pid); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// RemoveFromWishlist removes the bookmark. Removing an absent pair succeeds.
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	uid, pid, err := parsePair(userID, productID)
	if err != nil {
		return err
	}
	if err := s.wishlist.Delete(ctx, uid, pid); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// GetUserWishlist lists the user's bookmarks with their products. Bookmarks
// whose product has been deleted are dropped from the listing.
func (s *WishlistService) GetUserWishlist(ctx context.Context, userID string) ([]WishlistEntry, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validation("Invalid user ID")
	}

	items, err := s.wishlist.FindByUser(ctx, uid)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	entries := make([]WishlistEntry, 0, len(items))
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		entries = append(entries, WishlistEntry{ProductID: item.ProductID.Hex(), Product: product})
	}
	return entries, nil
}
