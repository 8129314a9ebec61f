package services

import (
	"context"
	"testing"

	"jewels-backend/models"
	apperrors "jewels-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateCategoryDuplicateSlugIsConflict(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{})

	_, err := svc.CreateCategory(context.Background(), "Gold Rings", "gold-rings", nil)
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), "More Gold Rings", "gold-rings", nil)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, "Slug already exists", appErr.Message)
}

func TestGetCategoryByIDMalformedIsValidation(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{})

	_, err := svc.GetCategoryByID(context.Background(), "not-an-id")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Invalid category ID", appErr.Message)
}

func TestGetCategoryByIDMissing(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{})

	_, err := svc.GetCategoryByID(context.Background(), primitive.NewObjectID().Hex())
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestUpdateCategoryKeepsImageWhenNoneSupplied(t *testing.T) {
	image := "https://cdn.example.com/categories/rings.jpg"
	repo := &fakeCategoryRepo{categories: []models.Category{{
		ID:    primitive.NewObjectID(),
		Name:  "Rings",
		Slug:  "rings",
		Image: &image,
	}}}
	svc := NewCategoryService(repo)

	updated, err := svc.UpdateCategory(context.Background(), repo.categories[0].ID.Hex(), "Fine Rings", "fine-rings", nil)
	require.NoError(t, err)
	assert.Equal(t, "Fine Rings", updated.Name)
	assert.Equal(t, "fine-rings", updated.Slug)
	require.NotNil(t, updated.Image)
	assert.Equal(t, image, *updated.Image)
}

func TestUpdateCategoryReplacesImage(t *testing.T) {
	oldImage := "https://cdn.example.com/categories/old.jpg"
	newImage := "https://cdn.example.com/categories/new.jpg"
	repo := &fakeCategoryRepo{categories: []models.Category{{
		ID:    primitive.NewObjectID(),
		Name:  "Rings",
		Slug:  "rings",
		Image: &oldImage,
	}}}
	svc := NewCategoryService(repo)

	updated, err := svc.UpdateCategory(context.Background(), repo.categories[0].ID.Hex(), "Rings", "rings", &newImage)
	require.NoError(t, err)
	require.NotNil(t, updated.Image)
	assert.Equal(t, newImage, *updated.Image)
}

func TestDeleteCategoryMissing(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{})

	err := svc.DeleteCategory(context.Background(), primitive.NewObjectID().Hex())
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
