package services

import (
	"context"
	"errors"

	"jewels-backend/models"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartRepo defines the cart data access used by CartService.
type CartRepo interface {
	FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.CartItem, error)
	IncrementQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty, maxQuantity int) (bool, error)
	Insert(ctx context.Context, item *models.CartItem) error
	SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty int) (int64, error)
	Delete(ctx context.Context, userID, productID primitive.ObjectID) error
	FindLinesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartLine, error)
}

type CartService struct {
	cart     CartRepo
	products ProductRepo
}

func NewCartService(cart CartRepo, products ProductRepo) *CartService {
	return &CartService{cart: cart, products: products}
}

// AddToCart adds qty of a product to the user's cart, merging into the
// existing line item for the pair if one exists. The merged quantity may
// never exceed the product's current stock; the merge itself is an atomic
// conditional increment so concurrent adds for the same pair cannot race
// past the limit.
func (s *CartService) AddToCart(ctx context.Context, userID, productID string, qty int) error {
	uid, pid, err := parsePair(userID, productID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return apperrors.Validation("Quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, pid)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Product not found")
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	if qty > product.Stock {
		return apperrors.Validation("Requested quantity exceeds available stock")
	}

	merged, err := s.cart.IncrementQuantity(ctx, uid, pid, qty, product.Stock)
	if err != nil {
		return apperrors.Internal(err)
	}
	if merged {
		return nil
	}

	// No document accepted the increment: either the pair doesn't exist yet,
	// or merging would exceed stock.
	_, err = s.cart.FindByUserAndProduct(ctx, uid, pid)
	switch {
	case err == nil:
		return apperrors.Validation("Total quantity exceeds available stock")
	case !errors.Is(err, repository.ErrNotFound):
		return apperrors.Internal(err)
	}

	insertErr := s.cart.Insert(ctx, &models.CartItem{UserID: uid, ProductID: pid, Quantity: qty})
	if errors.Is(insertErr, repository.ErrDuplicate) {
		// Lost the first-insert race; the unique index kept a single line
		// item, so retry the merge once against it.
		merged, err = s.cart.IncrementQuantity(ctx, uid, pid, qty, product.Stock)
		if err != nil {
			return apperrors.Internal(err)
		}
		if !merged {
			return apperrors.Validation("Total quantity exceeds available stock")
		}
		return nil
	}
	if insertErr != nil {
		return apperrors.Internal(insertErr)
	}
	return nil
}

// UpdateCartItem sets the pair's quantity to an absolute value.
func (s *CartService) UpdateCartItem(ctx context.Context, userID, productID string, qty int) error {
	uid, pid, err := parsePair(userID, productID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return apperrors.Validation("Quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, pid)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Product not found")
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	if qty > product.Stock {
		return apperrors.Validation("Requested quantity exceeds available stock")
	}

	matched, err := s.cart.SetQuantity(ctx, uid, pid, qty)
	if err != nil {
		return apperrors.Internal(err)
	}
	if matched == 0 {
		return apperrors.NotFound("Cart item not found")
	}
	return nil
}

// RemoveFromCart deletes the pair's line item. Removing an absent pair is a
// no-op success.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID string) error {
	uid, pid, err := parsePair(userID, productID)
	if err != nil {
		return err
	}
	if err := s.cart.Delete(ctx, uid, pid); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// GetUserCart returns the user's line items joined with a snapshot of each
// product. Items whose product has been deleted drop out of the join.
func (s *CartService) GetUserCart(ctx context.Context, userID string) ([]models.CartLine, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validation("Invalid user ID")
	}

	lines, err := s.cart.FindLinesByUser(ctx, uid)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return lines, nil
}

func parsePair(userID, productID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperrors.Validation("Invalid user ID")
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperrors.NotFound("Product not found")
	}
	return uid, pid, nil
}
