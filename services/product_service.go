package services

import (
	"context"
	"errors"
	"time"

	"jewels-backend/models"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductRepo defines the product data access used by the services.
type ProductRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// CategoryRepo defines the category data access used by the services.
type CategoryRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Insert(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type ProductService struct {
	products   ProductRepo
	categories CategoryRepo
}

func NewProductService(products ProductRepo, categories CategoryRepo) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// CreateProduct stamps the creation time, inserts and returns the stored
// record.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.CreatedAt = time.Now().UTC()
	if product.Images == nil {
		product.Images = []string{}
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

// UpdateProduct merges the supplied fields into an existing product and
// returns the post-merge document. A malformed or unknown id is NotFound;
// an update that changes no fields is a successful no-op, not an error.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, updates bson.M) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Product not found")
	}

	matched, err := s.products.Update(ctx, productID, updates)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if matched == 0 {
		return nil, apperrors.NotFound("Product not found")
	}

	updated, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Product not found")
	}

	deleted, err := s.products.Delete(ctx, productID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Product not found")
	}
	return nil
}

// ListProducts returns all products with their category reference resolved
// and embedded inline. Unresolvable references fall back to the
// "Uncategorized" placeholder. Documents without an identifier are skipped
// and logged rather than failing the whole listing.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	byID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID.Hex()] = &categories[i]
	}

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID.IsZero() {
			zap.L().Warn("Skipping product without identifier", zap.String("name", p.Name))
			continue
		}
		if cat, ok := byID[p.Category.ID]; ok {
			p.Category = models.FromCategory(cat)
		} else {
			p.Category = models.Uncategorized()
		}
		result = append(result, p)
	}
	return result, nil
}

// GetProductByID returns the stored document. The category field keeps its
// canonical shape but is not re-resolved against the category collection.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Product not found")
	}

	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}
