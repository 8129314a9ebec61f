package services

import (
	"context"
	"errors"

	"jewels-backend/models"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryService struct {
	categories CategoryRepo
}

func NewCategoryService(categories CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategory inserts a category after checking slug uniqueness. The
// unique index backs the check, so a race between two creates still ends in
// a single winner.
func (s *CategoryService) CreateCategory(ctx context.Context, name, slug string, image *string) (*models.Category, error) {
	_, err := s.categories.FindBySlug(ctx, slug)
	if err == nil {
		return nil, apperrors.Conflict("Slug already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	category := &models.Category{Name: name, Slug: slug, Image: image}
	if err := s.categories.Insert(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Slug already exists")
		}
		return nil, apperrors.Internal(err)
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	categoryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid category ID")
	}

	category, err := s.categories.FindByID(ctx, categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Category not found")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return category, nil
}

// UpdateCategory replaces name, slug and image, keeping the stored image
// when the caller supplies none.
func (s *CategoryService) UpdateCategory(ctx context.Context, id, name, slug string, image *string) (*models.Category, error) {
	categoryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Category not found")
	}

	existing, err := s.categories.FindByID(ctx, categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Category not found")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if image == nil {
		image = existing.Image
	}
	updates := bson.M{"name": name, "slug": slug, "image": image}

	if _, err := s.categories.Update(ctx, categoryID, updates); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Slug already exists")
		}
		return nil, apperrors.Internal(err)
	}

	updated, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Category not found")
	}

	deleted, err := s.categories.Delete(ctx, categoryID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Category not found")
	}
	return nil
}
